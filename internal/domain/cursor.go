package domain

import "time"

// ViewCursor records when a user last looked at a scope, so "new since"
// views compare against an explicit, persisted timestamp.
type ViewCursor struct {
	UserID       string
	Scope        string
	LastViewedAt time.Time
}

// PlacementScope is the cursor scope for a placement's submissions.
func PlacementScope(placementID string) string {
	return "placement:" + placementID
}
