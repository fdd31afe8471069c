// Package template defines the field schemas that log payloads follow and
// validates payloads against them.
package template

import "github.com/alexanderramin/fieldlog/internal/domain"

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldScale    FieldType = "scale"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
)

// Field is one entry of a log template. Min and Max bound scale and number
// fields; Options lists the choices of a select field.
type Field struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
}

type Template struct {
	ID          domain.TemplateKind `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Fields      []Field             `json:"fields"`
}

// FieldByID returns the field with the given id.
func (t *Template) FieldByID(id string) (Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
