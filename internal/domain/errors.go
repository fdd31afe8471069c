package domain

import "errors"

var (
	// ErrPeriodNotStarted is returned when the placement start date is still
	// in the future relative to the requested day.
	ErrPeriodNotStarted = errors.New("practicum has not started yet")

	// ErrDuplicatePeriod is returned when an entry already exists for the
	// requested period key.
	ErrDuplicatePeriod = errors.New("a log entry already exists for this period")

	// ErrInvalidDayDate is returned when a day sub-entry falls outside its
	// parent period window.
	ErrInvalidDayDate = errors.New("day is outside the period window")

	// ErrIllegalMutation is returned when a non-draft entry is edited or deleted.
	ErrIllegalMutation = errors.New("log entry is no longer a draft")

	// ErrIllegalTransition is returned when a review action does not apply
	// to the entry's current status.
	ErrIllegalTransition = errors.New("status transition not allowed")

	// ErrTransportFailure wraps datastore read/write failures.
	ErrTransportFailure = errors.New("datastore unavailable")

	// ErrEnrollmentNotApproved is returned when a student without an approved
	// enrollment tries to open a period.
	ErrEnrollmentNotApproved = errors.New("enrollment is not approved")

	// ErrInvalidPayload is returned when log fields fail template validation.
	ErrInvalidPayload = errors.New("log fields are invalid")
)
