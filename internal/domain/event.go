package domain

import (
	"context"
	"strings"
	"time"
)

// EventType classifies an event for browsing and filtering.
type EventType string

// Supported event types.
const (
	EventTypeBirthday    EventType = "BIRTHDAY"
	EventTypeWedding     EventType = "WEDDING"
	EventTypeHoliday     EventType = "HOLIDAY"
	EventTypeAnniversary EventType = "ANNIVERSARY"
	EventTypeOther       EventType = "OTHER"
)

// ParseEventType converts a case-insensitive string into an EventType.
// Returns ErrInvalidInput for unknown values.
func ParseEventType(s string) (EventType, error) {
	switch EventType(strings.ToUpper(strings.TrimSpace(s))) {
	case EventTypeBirthday:
		return EventTypeBirthday, nil
	case EventTypeWedding:
		return EventTypeWedding, nil
	case EventTypeHoliday:
		return EventTypeHoliday, nil
	case EventTypeAnniversary:
		return EventTypeAnniversary, nil
	case EventTypeOther:
		return EventTypeOther, nil
	}
	return "", ErrInvalidInput
}

// Event represents a gift-registry event. EventKey is an opaque share code that
// resolves to exactly one event; CreatorID and EventKey are immutable after creation.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	EventKey    string    `json:"event_key"`
	CreatorID   string    `json:"creator_id,omitempty"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Type        EventType `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create; EventKey is set by the event service.
func NewEvent(name string, date time.Time, creatorID, description, location string, eventType EventType, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Date:        date,
		CreatorID:   creatorID,
		Description: description,
		Location:    location,
		Type:        eventType,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines storage operations for events.
// Create must fail with ErrConflict when the event key is already taken.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByKey(ctx context.Context, key string) (*Event, error)
	ListPublic(ctx context.Context) ([]*Event, error)
	ListByCreatorID(ctx context.Context, creatorID string) ([]*Event, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]*Event, error)
	ListByType(ctx context.Context, eventType EventType) ([]*Event, error)
	Search(ctx context.Context, query string) ([]*Event, error)
	Update(ctx context.Context, eventID string, name, description, location *string, date *time.Time, eventType *EventType) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the event directory operations.
type EventService interface {
	// CreateEvent generates a unique event key and persists the event.
	// creatorEmail, when non-empty, receives the event-created email with the key.
	CreateEvent(ctx context.Context, event *Event, creatorEmail string) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	// GetEventByKey resolves the opaque share key to its event.
	GetEventByKey(ctx context.Context, key string) (*Event, error)
	ListPublicEvents(ctx context.Context) ([]*Event, error)
	ListEventsByCreator(ctx context.Context, creatorID string) ([]*Event, error)
	ListUpcomingEvents(ctx context.Context) ([]*Event, error)
	ListEventsByType(ctx context.Context, eventType EventType) ([]*Event, error)
	SearchEvents(ctx context.Context, query string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, creatorID string, name, description, location *string, date *time.Time, eventType *EventType) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, creatorID string) error
}
