package domain

import (
	"context"
	"time"
)

// RSVPStatus is the state of a guest's invitation.
type RSVPStatus string

// RSVP states. A guest may re-respond; the ledger keeps the latest response.
const (
	RSVPStatusPending   RSVPStatus = "PENDING"
	RSVPStatusAttending RSVPStatus = "ATTENDING"
	RSVPStatusDeclined  RSVPStatus = "DECLINED"
)

// Invitation tracks one guest's invitation to an event. At most one invitation
// exists per (event, guest email) pair.
// swagger:model Invitation
type Invitation struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	GuestEmail  string     `json:"guest_email"`
	Status      RSVPStatus `json:"rsvp_status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewInvitation returns a PENDING invitation for the guest. ID is set by the
// repository on create.
func NewInvitation(eventID, guestEmail string, createdAt time.Time) *Invitation {
	return &Invitation{
		EventID:    eventID,
		GuestEmail: guestEmail,
		Status:     RSVPStatusPending,
		CreatedAt:  createdAt,
	}
}

// RSVPStatusCounts summarizes invitation states for an event.
// Attending + Declined + Pending always equals TotalInvited.
// swagger:model RSVPStatusCounts
type RSVPStatusCounts struct {
	Attending    int `json:"attending"`
	Declined     int `json:"declined"`
	Pending      int `json:"pending"`
	TotalInvited int `json:"total_invited"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	// Upsert inserts the invitation unless one already exists for the
	// (event, guest email) pair. Returns created=false when the pair exists;
	// an existing invitation's status is never reset.
	Upsert(ctx context.Context, inv *Invitation) (created bool, err error)
	GetByID(ctx context.Context, id string) (*Invitation, error)
	// UpdateStatus records the guest's latest response.
	UpdateStatus(ctx context.Context, id string, status RSVPStatus, respondedAt time.Time) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID, search string, params PaginationParams) ([]*Invitation, int, error)
	ListAllByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	CountByStatus(ctx context.Context, eventID string) (*RSVPStatusCounts, error)
}

// InvitationService defines the invitation ledger operations.
type InvitationService interface {
	// Invite upserts a PENDING invitation per email and sends the RSVP email
	// best-effort. Returns the number of invitations processed and the emails
	// whose notification failed; notification failure never rolls back the row.
	Invite(ctx context.Context, eventID, creatorID string, emails []string) (invited int, failed []string, err error)
	// Respond records the guest's response ("accepted" or "declined").
	// Last write wins: the email link cannot be revoked, so re-responding is allowed.
	Respond(ctx context.Context, invitationID, response string) (*Invitation, error)
	GetInvitation(ctx context.Context, invitationID string) (*Invitation, error)
	StatusCounts(ctx context.Context, eventID string) (*RSVPStatusCounts, error)
	ListInvitations(ctx context.Context, eventID, callerID, search string, params PaginationParams) ([]*Invitation, int, error)
	ListRSVPs(ctx context.Context, eventID, callerID string) ([]*Invitation, error)
}
