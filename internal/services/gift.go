package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"giftregistry/internal/domain"
)

type giftService struct {
	eventRepo      domain.EventRepository
	giftRepo       domain.GiftRepository
	contextTimeout time.Duration
}

func NewGiftService(eventRepo domain.EventRepository,
	giftRepo domain.GiftRepository,
	timeout time.Duration,
) domain.GiftService {
	return &giftService{
		eventRepo:      eventRepo,
		giftRepo:       giftRepo,
		contextTimeout: timeout,
	}
}

func (s *giftService) AddGift(ctx context.Context, gift *domain.Gift, plannerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if plannerID == "" {
		return domain.ErrInvalidInput
	}
	gift.Name = strings.TrimSpace(gift.Name)
	gift.Recipient = strings.TrimSpace(gift.Recipient)
	if gift.Name == "" || gift.Recipient == "" || gift.Price < 0 {
		return domain.ErrInvalidInput
	}

	if _, err := s.eventRepo.GetByID(ctx, gift.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	now := time.Now()
	gift.PlannedByID = plannerID
	gift.Status = domain.GiftStatusPlanned
	gift.CreatedAt = now
	gift.UpdatedAt = now
	if err := s.giftRepo.Create(ctx, gift); err != nil {
		return fmt.Errorf("create gift: %w", err)
	}
	return nil
}

func (s *giftService) ListGifts(ctx context.Context, eventID, viewerID string) ([]*domain.Gift, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// The surprise rule: the creator gets an empty registry, never a hint of
	// what was claimed or by whom.
	if !domain.CanViewGiftDetails(viewerID, event) {
		return []*domain.Gift{}, nil
	}

	gifts, err := s.giftRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	if gifts == nil {
		gifts = []*domain.Gift{}
	}
	return gifts, nil
}

func (s *giftService) GetGift(ctx context.Context, giftID, viewerID string) (*domain.Gift, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	gift, err := s.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gift: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, gift.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanViewGiftDetails(viewerID, event) {
		return nil, domain.ErrForbidden
	}
	return gift, nil
}

func (s *giftService) ConfirmGift(ctx context.Context, giftID, requesterID string) (*domain.Gift, error) {
	return s.transition(ctx, giftID, requesterID, domain.GiftStatusPurchased)
}

func (s *giftService) CancelGift(ctx context.Context, giftID, requesterID string) (*domain.Gift, error) {
	return s.transition(ctx, giftID, requesterID, domain.GiftStatusCancelled)
}

// transition moves a PLANNED gift to a terminal status. The ownership check
// reads the current row first; the compare-and-swap in the repository still
// guards against a concurrent transition between the read and the write.
func (s *giftService) transition(ctx context.Context, giftID, requesterID string, to domain.GiftStatus) (*domain.Gift, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	gift, err := s.giftRepo.GetByID(ctx, giftID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get gift: %w", err)
	}
	if gift.PlannedByID != requesterID {
		return nil, domain.ErrForbidden
	}
	if gift.Status != domain.GiftStatusPlanned {
		return nil, domain.ErrConflict
	}

	updated, err := s.giftRepo.UpdateStatus(ctx, giftID, domain.GiftStatusPlanned, to)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update gift status: %w", err)
	}
	return updated, nil
}
