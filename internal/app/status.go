package app

// Health summarises the verification state of a student's logbook.
type Health string

const (
	HealthGood         Health = "good"
	HealthDelayed      Health = "delayed"
	HealthActionNeeded Health = "action_needed"
)

// DelayedPendingThreshold is the number of unverified submissions above
// which a logbook counts as delayed.
const DelayedPendingThreshold = 5

type ProgressSummary struct {
	StudentID   string
	PlacementID string

	Submitted int
	Expected  int
	Verified  int
	Pending   int
	Rejected  int
	Drafts    int

	ProgressPct int
	// DaysRemaining is nil for open-ended placements.
	DaysRemaining *int
	Completed     bool
	Health        Health
}
