package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValue(t *testing.T) {
	app := &App{Location: time.UTC, Now: func() time.Time { return testNow }}
	var d time.Time
	v := newDateValue(&d)

	assert.Equal(t, testutil.Date(2024, 1, 10), v.orToday(app))
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("2024-02-29"))
	assert.Equal(t, "2024-02-29", v.String())
	assert.Equal(t, testutil.Date(2024, 2, 29), v.orToday(app))

	assert.Error(t, v.Set("29/02/2024"))
}

func TestParseFieldArgs(t *testing.T) {
	got, err := parseFieldArgs([]string{"hours=6", "notes=a=b"}, domain.TemplateIndustrialAttachment)
	require.NoError(t, err)
	assert.Equal(t, "a=b", got["notes"])

	_, err = parseFieldArgs([]string{"novalue"}, domain.TemplateCustom)
	assert.Error(t, err)
	_, err = parseFieldArgs([]string{"=x"}, domain.TemplateCustom)
	assert.Error(t, err)
}

func TestActingUser(t *testing.T) {
	_, err := actingUser(&globalFlags{})
	assert.Error(t, err)

	u, err := actingUser(&globalFlags{as: "s9"})
	require.NoError(t, err)
	assert.Equal(t, "s9", u)
}

func TestResolvePlacementID(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	_, err := resolvePlacementID(ctx, app, "")
	assert.Error(t, err, "no placements")

	a := testutil.NewTestPlacement("A")
	require.NoError(t, app.Placements.Create(ctx, a))

	id, err := resolvePlacementID(ctx, app, "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, id, "only placement is the default")

	b := testutil.NewTestPlacement("B")
	require.NoError(t, app.Placements.Create(ctx, b))

	_, err = resolvePlacementID(ctx, app, "")
	assert.Error(t, err)

	id, err = resolvePlacementID(ctx, app, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	id, err = resolvePlacementID(ctx, app, a.ID[:12])
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)

	_, err = resolvePlacementID(ctx, app, "zzzz")
	assert.Error(t, err)
}

func TestResolveEntryID(t *testing.T) {
	app := testApp(t)
	p := seedPlacement(t, app)
	id := openWeek(t, app)
	ctx := context.Background()

	got, err := resolveEntryID(ctx, app, "s1", p.ID, id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = resolveEntryID(ctx, app, "s2", p.ID, id)
	assert.Error(t, err, "other students' entries are not matched")
}
