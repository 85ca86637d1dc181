package domain

import (
	"context"
	"time"
)

// GiftStatus is the state of a gift claim.
type GiftStatus string

// Gift claim states. PLANNED may move to CANCELLED or PURCHASED; both are
// terminal for the row. A cancelled claim is re-claimed by creating a new gift.
const (
	GiftStatusPlanned   GiftStatus = "PLANNED"
	GiftStatusCancelled GiftStatus = "CANCELLED"
	GiftStatusPurchased GiftStatus = "PURCHASED"
)

// Gift represents one guest's gift claim for an event. PlannedByID is the
// guest who made the claim, never shown to the event creator.
// swagger:model Gift
type Gift struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Name        string     `json:"name"`
	Recipient   string     `json:"recipient"`
	Notes       string     `json:"notes,omitempty"`
	Price       float64    `json:"price"`
	Image       string     `json:"image,omitempty"`
	ProductURL  string     `json:"product_url,omitempty"`
	Store       string     `json:"store,omitempty"`
	PlannedByID string     `json:"planned_by_id,omitempty"`
	Status      GiftStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GiftStatusTotals summarizes gift claim states for an event. This is the only
// gift information the event creator ever sees.
// swagger:model GiftStatusTotals
type GiftStatusTotals struct {
	Planned   int `json:"planned"`
	Cancelled int `json:"cancelled"`
	Purchased int `json:"purchased"`
}

// GiftRepository defines storage operations for gifts.
type GiftRepository interface {
	Create(ctx context.Context, gift *Gift) error
	GetByID(ctx context.Context, id string) (*Gift, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Gift, error)
	// UpdateStatus transitions the gift from one status to another atomically
	// (compare-and-swap on the status column). Returns ErrConflict when the
	// gift is no longer in the expected status, ErrNotFound when it does not exist.
	UpdateStatus(ctx context.Context, giftID string, from, to GiftStatus) (*Gift, error)
	CountByStatus(ctx context.Context, eventID string) (*GiftStatusTotals, error)
}

// GiftService defines the gift registry operations.
type GiftService interface {
	// AddGift validates and creates a PLANNED gift claimed by plannerID.
	AddGift(ctx context.Context, gift *Gift, plannerID string) error
	// ListGifts returns the event's gifts filtered through the visibility
	// policy: the event creator always receives an empty collection.
	ListGifts(ctx context.Context, eventID, viewerID string) ([]*Gift, error)
	GetGift(ctx context.Context, giftID, viewerID string) (*Gift, error)
	// ConfirmGift transitions PLANNED -> PURCHASED. Planner only.
	ConfirmGift(ctx context.Context, giftID, requesterID string) (*Gift, error)
	// CancelGift transitions PLANNED -> CANCELLED, releasing the claim. Planner only.
	CancelGift(ctx context.Context, giftID, requesterID string) (*Gift, error)
}
