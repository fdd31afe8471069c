package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *PlacementImport) []error {
	var errs []error

	if err := validate.Struct(schema); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if schema.EndDate != nil {
		start, startErr := time.Parse("2006-01-02", schema.StartDate)
		end, endErr := time.Parse("2006-01-02", *schema.EndDate)
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("end_date %q must not be before start_date %q", *schema.EndDate, schema.StartDate))
		}
	}

	seen := make(map[string]bool)
	for i, m := range schema.Milestones {
		key := m.Date + "|" + m.Title
		if m.Title != "" && seen[key] {
			errs = append(errs, fmt.Errorf("milestones[%d]: duplicate milestone %q on %s", i, m.Title, m.Date))
		}
		seen[key] = true
	}

	students := make(map[string]bool)
	for i, e := range schema.Enrollments {
		if e.StudentID != "" && students[e.StudentID] {
			errs = append(errs, fmt.Errorf("enrollments[%d].student_id: duplicate student %q", i, e.StudentID))
		}
		students[e.StudentID] = true
	}

	return errs
}

func fieldError(fe validator.FieldError) error {
	// Drop the root struct name from the namespace.
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "datetime":
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", path, fe.Value())
	case "email":
		return fmt.Errorf("%s: invalid email %q", path, fe.Value())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (expected one of: %s)", path, fe.Value(), fe.Param())
	}
	return fmt.Errorf("%s: failed %s validation", path, fe.Tag())
}
