package template

import "github.com/alexanderramin/fieldlog/internal/domain"

var TeachingPractice = Template{
	ID:          domain.TemplateTeachingPractice,
	Name:        "Teaching Practice",
	Description: "Standard log for student teachers tracking classes and observations.",
	Fields: []Field{
		{ID: "office_activities", Label: "Office / Administration Activities", Type: FieldTextarea,
			Placeholder: "e.g., Staff meeting, preparing exams..."},
		{ID: "class_taught", Label: "Class Taught", Type: FieldText, Required: true, Placeholder: "e.g., Form 3B"},
		{ID: "subject_taught", Label: "Subject", Type: FieldText, Required: true, Placeholder: "e.g., Mathematics"},
		{ID: "lesson_topic", Label: "Topic / Sub-topic", Type: FieldText, Required: true},
		{ID: "observations", Label: "Self-Observation / Remarks", Type: FieldTextarea, Required: true,
			Description: "Reflect on lesson delivery, student engagement, or challenges."},
		{ID: "supervisor_notes", Label: "Cooperating Teacher Notes", Type: FieldTextarea},
	},
}

var IndustrialAttachment = Template{
	ID:          domain.TemplateIndustrialAttachment,
	Name:        "Industrial Attachment",
	Description: "Standard log for workplace attachment tracking tasks and skills.",
	Fields: []Field{
		{ID: "department", Label: "Department / Section", Type: FieldText, Required: true,
			Placeholder: "e.g., IT Support, Accounting..."},
		{ID: "tasks_performed", Label: "Tasks Performed", Type: FieldTextarea, Required: true,
			Description: "List the main activities you undertook today."},
		{ID: "skills_acquired", Label: "New Skills / Knowledge Acquired", Type: FieldTextarea, Required: true},
		{ID: "challenges", Label: "Challenges Encountered", Type: FieldTextarea},
	},
}

// Lookup returns the built-in template for kind. Custom placements have no
// template and their payloads are not validated.
func Lookup(kind domain.TemplateKind) (*Template, bool) {
	switch kind {
	case domain.TemplateTeachingPractice:
		return &TeachingPractice, true
	case domain.TemplateIndustrialAttachment:
		return &IndustrialAttachment, true
	}
	return nil, false
}
