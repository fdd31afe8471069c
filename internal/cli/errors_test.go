package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/fieldlog/internal/template"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))

	verr := &template.ValidationError{Errors: map[string]string{
		"lesson_topic": "is required",
		"class_taught": "is required",
	}}
	got := FormatError(fmt.Errorf("day 2024-01-09: %w", verr))
	assert.Equal(t, "Error: log fields are invalid:\n  - class_taught: is required\n  - lesson_topic: is required", got)
}
