package cli

import (
	"testing"

	"github.com/alexanderramin/fieldlog/internal/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"
)

func TestDSNSetAndClear(t *testing.T) {
	gokeyring.MockInit()
	app := testApp(t)

	out, err := executeCmd(t, app, "dsn", "set", "postgres://u@localhost/fieldlog")
	require.NoError(t, err)
	assert.Contains(t, out, "saved")

	dsn, err := keyring.GetConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u@localhost/fieldlog", dsn)

	out, err = executeCmd(t, app, "dsn", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, err = executeCmd(t, app, "dsn", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No connection string was saved.")
}
