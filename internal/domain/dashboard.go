package domain

import "context"

// Dashboard is the creator-facing summary of an event: RSVP counts and gift
// status totals. It never carries gift names, ids, or planner identities.
// swagger:model Dashboard
type Dashboard struct {
	Event *Event            `json:"event"`
	RSVPs *RSVPStatusCounts `json:"rsvps"`
	Gifts *GiftStatusTotals `json:"gifts"`
}

// DashboardService derives the dashboard from the invitation ledger and the
// gift registry. It holds no state of its own.
type DashboardService interface {
	// BuildDashboard returns the summary for the event. Only the event
	// creator may request it.
	BuildDashboard(ctx context.Context, eventID, requesterID string) (*Dashboard, error)
}
