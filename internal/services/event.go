package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"giftregistry/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

const (
	eventKeyLength = 10

	// maxKeyAttempts bounds the retry loop on event key collisions. With a
	// 36^10 key space a second collision in a row means something is broken.
	maxKeyAttempts = 5
)

var eventKeyAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateEventKey() (string, error) {
	b := make([]rune, eventKeyLength)
	max := big.NewInt(int64(len(eventKeyAlphabet)))
	for i := 0; i < eventKeyLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventKeyAlphabet[n.Int64()]
	}
	return string(b), nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, creatorEmail string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.CreatorID == "" {
		return fmt.Errorf("event creator is required")
	}
	if strings.TrimSpace(event.Name) == "" || strings.TrimSpace(event.Description) == "" {
		return domain.ErrInvalidInput
	}
	if event.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	if event.Type == "" {
		event.Type = domain.EventTypeOther
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	// The key is generated here, not by the store, so a unique-constraint
	// collision can be retried with a fresh key.
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key, err := generateEventKey()
		if err != nil {
			return fmt.Errorf("generate event key: %w", err)
		}
		event.EventKey = key
		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			s.sendEventCreatedEmail(ctx, event, creatorEmail)
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("create event: %w", err)
		}
	}
	return fmt.Errorf("create event: could not generate a unique event key after %d attempts", maxKeyAttempts)
}

// sendEventCreatedEmail delivers the share key to the creator. Best-effort:
// the event exists regardless of whether the email goes out.
func (s *eventService) sendEventCreatedEmail(ctx context.Context, event *domain.Event, creatorEmail string) {
	if creatorEmail == "" {
		return
	}
	data := &domain.EventCreatedEmailData{
		Email:     creatorEmail,
		EventName: event.Name,
		EventKey:  event.EventKey,
	}
	if err := s.emailService.SendEventCreated(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "event created email failed", "event_id", event.ID, "err", err)
	}
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByKey(ctx context.Context, key string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by key: %w", err)
	}
	return event, nil
}

func (s *eventService) ListPublicEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListEventsByCreator(ctx context.Context, creatorID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list events by creator: %w", err)
	}
	return events, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListEventsByType(ctx context.Context, eventType domain.EventType) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListByType(ctx, eventType)
	if err != nil {
		return nil, fmt.Errorf("list events by type: %w", err)
	}
	return events, nil
}

func (s *eventService) SearchEvents(ctx context.Context, query string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, creatorID string, name, description, location *string, date *time.Time, eventType *domain.EventType) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != creatorID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.eventRepo.Update(ctx, eventID, name, description, location, date, eventType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, creatorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != creatorID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
