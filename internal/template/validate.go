package template

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries per-field messages keyed by field id.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Errors))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Errors[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidPayload
}

// Check validates fields against t and returns a *ValidationError when any
// field fails. A nil template accepts everything.
func Check(fields map[string]any, t *Template) error {
	if t == nil {
		return nil
	}
	if errs := Validate(fields, t); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Validate returns a message per failing field. Optional fields that are
// absent or empty are skipped. Text and textarea fields accept any value.
func Validate(fields map[string]any, t *Template) map[string]string {
	errs := map[string]string{}
	for _, f := range t.Fields {
		value, present := fields[f.ID]
		if !present || isEmpty(value) {
			if f.Required {
				errs[f.ID] = fmt.Sprintf("%s is required", f.Label)
			}
			continue
		}
		if msg := checkValue(f, value); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

func checkValue(f Field, value any) string {
	switch f.Type {
	case FieldNumber, FieldScale:
		n, ok := toFloat(value)
		if !ok || math.IsNaN(n) {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.Type == FieldScale {
			if f.Min != nil && f.Max != nil && validate.Var(n, "gte="+num(*f.Min)+",lte="+num(*f.Max)) != nil {
				return fmt.Sprintf("%s must be between %s and %s", f.Label, num(*f.Min), num(*f.Max))
			}
			return ""
		}
		msg := ""
		if f.Min != nil && validate.Var(n, "gte="+num(*f.Min)) != nil {
			msg = fmt.Sprintf("%s must be at least %s", f.Label, num(*f.Min))
		}
		if f.Max != nil && validate.Var(n, "lte="+num(*f.Max)) != nil {
			msg = fmt.Sprintf("%s must be at most %s", f.Label, num(*f.Max))
		}
		return msg
	case FieldSelect:
		s, ok := value.(string)
		if !ok || !isOption(s, f.Options) {
			return fmt.Sprintf("%s must be one of the valid options", f.Label)
		}
	case FieldDate:
		s, ok := value.(string)
		if !ok || validate.Var(s, "datetime=2006-01-02") != nil {
			return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.Label)
		}
	}
	return ""
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isOption matches s against the select options with a oneof rule.
// Options containing a single quote cannot be expressed in a tag and are
// compared directly.
func isOption(s string, options []string) bool {
	if len(options) == 0 {
		return false
	}
	quoted := make([]string, 0, len(options))
	for _, o := range options {
		if strings.Contains(o, "'") {
			return slices.Contains(options, s)
		}
		o = strings.ReplaceAll(o, ",", "0x2C")
		o = strings.ReplaceAll(o, "|", "0x7C")
		quoted = append(quoted, "'"+o+"'")
	}
	return validate.Var(s, "oneof="+strings.Join(quoted, " ")) == nil
}

// Coerce turns raw key=value input into a payload, parsing number and scale
// fields of t. Values that do not parse are kept as strings so Validate can
// report them.
func Coerce(raw map[string]string, t *Template) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
		if t == nil {
			continue
		}
		f, ok := t.FieldByID(k)
		if !ok || (f.Type != FieldNumber && f.Type != FieldScale) {
			continue
		}
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			out[k] = n
		}
	}
	return out
}
