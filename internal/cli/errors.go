package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/logger"
	"github.com/alexanderramin/fieldlog/internal/template"
)

// FormatError renders err with the "Error: " prefix. Field validation
// failures list one field per line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var verr *template.ValidationError
	if errors.As(err, &verr) {
		keys := make([]string, 0, len(verr.Errors))
		for k := range verr.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("Error: log fields are invalid:")
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  - %s: %s", k, verr.Errors[k])
		}
		return b.String()
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs err, prints it to stderr and exits with status 1.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, FormatError(err))
	os.Exit(1)
}
