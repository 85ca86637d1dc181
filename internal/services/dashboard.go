package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftregistry/internal/domain"
)

type dashboardService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	giftRepo       domain.GiftRepository
	contextTimeout time.Duration
}

func NewDashboardService(eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	giftRepo domain.GiftRepository,
	timeout time.Duration,
) domain.DashboardService {
	return &dashboardService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		giftRepo:       giftRepo,
		contextTimeout: timeout,
	}
}

func (s *dashboardService) BuildDashboard(ctx context.Context, eventID, requesterID string) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != requesterID {
		return nil, domain.ErrForbidden
	}

	rsvps, err := s.invitationRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count invitations: %w", err)
	}

	// Gift totals only. Individual gifts stay behind the visibility policy;
	// the creator never learns names or planners from this path.
	gifts, err := s.giftRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count gifts: %w", err)
	}

	return &domain.Dashboard{
		Event: event,
		RSVPs: rsvps,
		Gifts: gifts,
	}, nil
}
