package domain

// Cadence is the reporting frequency of a placement.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// ValidCadences is the canonical set of accepted cadence strings.
var ValidCadences = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}

// IsComposite reports whether entries of this cadence hold per-day
// sub-entries plus a reflection rather than a flat field record.
func (c Cadence) IsComposite() bool {
	return c == CadenceWeekly || c == CadenceMonthly
}

// LengthDays returns the number of days in one reporting period. Monthly
// logs are numbered and windowed by Monday-aligned week like weekly ones;
// only their label differs.
func (c Cadence) LengthDays() int {
	switch c {
	case CadenceWeekly, CadenceMonthly:
		return 7
	default:
		return 1
	}
}

// TemplateKind tags the field schema used for log payloads.
type TemplateKind string

const (
	TemplateTeachingPractice     TemplateKind = "teaching_practice"
	TemplateIndustrialAttachment TemplateKind = "industrial_attachment"
	TemplateCustom               TemplateKind = "custom"
)

// ValidTemplateKinds is the canonical set of accepted log template tags.
var ValidTemplateKinds = map[string]bool{
	"teaching_practice": true, "industrial_attachment": true, "custom": true,
}

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
)

type SupervisorStatus string

const (
	SupervisorPending  SupervisorStatus = "pending"
	SupervisorVerified SupervisorStatus = "verified"
	SupervisorRejected SupervisorStatus = "rejected"
)

// IsTerminal reports whether the supervisor has reached a verdict.
func (s SupervisorStatus) IsTerminal() bool {
	return s == SupervisorVerified || s == SupervisorRejected
}

type InstructorStatus string

const (
	InstructorUnread InstructorStatus = "unread"
	InstructorRead   InstructorStatus = "read"
)

// DisplayStatus is the single badge derived from the three status axes.
// It is never stored.
type DisplayStatus string

const (
	DisplayDraft     DisplayStatus = "draft"
	DisplaySubmitted DisplayStatus = "submitted"
	DisplayVerified  DisplayStatus = "verified"
	DisplayRejected  DisplayStatus = "rejected"
)

type EventCategory string

const (
	EventMilestone EventCategory = "milestone"
	EventDeadline  EventCategory = "deadline"
	EventLog       EventCategory = "log"
	EventMeeting   EventCategory = "meeting"
	EventReport    EventCategory = "report"
	EventOther     EventCategory = "other"
)

// ValidEventCategories is the canonical set of accepted timeline categories.
var ValidEventCategories = map[string]bool{
	"milestone": true, "deadline": true, "log": true,
	"meeting": true, "report": true, "other": true,
}

// LogFilter selects entries by display status in list views.
type LogFilter string

const (
	FilterAll      LogFilter = "all"
	FilterDraft    LogFilter = "draft"
	FilterPending  LogFilter = "pending"
	FilterVerified LogFilter = "verified"
	FilterRejected LogFilter = "rejected"
)

// ValidLogFilters is the canonical set of accepted filter strings.
var ValidLogFilters = map[string]bool{
	"all": true, "draft": true, "pending": true, "verified": true, "rejected": true,
}
