package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"giftregistry/internal/domain"
)

type invitationService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	emailService   domain.EmailService
	appBaseURL     string
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewInvitationService(eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	emailService domain.EmailService,
	appBaseURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.InvitationService {
	return &invitationService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		appBaseURL:     strings.TrimSuffix(appBaseURL, "/"),
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *invitationService) Invite(ctx context.Context, eventID, creatorID string, emails []string) (invited int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != creatorID {
		return 0, nil, domain.ErrForbidden
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		inv := domain.NewInvitation(eventID, email, time.Now())
		if _, err := s.invitationRepo.Upsert(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		invited++

		// Notification is fire-and-forget: the invitation row stands even if
		// the email never goes out.
		data := &domain.RSVPInvitationEmailData{
			Email:        email,
			EventName:    event.Name,
			EventDate:    event.Date.Format("January 2, 2006"),
			InvitationID: inv.ID,
			ResponseURL:  fmt.Sprintf("%s/rsvp/%s", s.appBaseURL, inv.ID),
		}
		if err := s.emailService.SendRSVPInvitation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "rsvp invitation email failed", "invitation_id", inv.ID, "err", err)
			failed = append(failed, email)
		}
	}
	return invited, failed, nil
}

func (s *invitationService) Respond(ctx context.Context, invitationID, response string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var status domain.RSVPStatus
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "accepted":
		status = domain.RSVPStatusAttending
	case "declined":
		status = domain.RSVPStatusDeclined
	default:
		return nil, domain.ErrInvalidInput
	}

	// Last write wins: the email link cannot be revoked, so a guest changing
	// their mind simply overwrites the previous response.
	inv, err := s.invitationRepo.UpdateStatus(ctx, invitationID, status, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update invitation status: %w", err)
	}
	return inv, nil
}

func (s *invitationService) GetInvitation(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) StatusCounts(ctx context.Context, eventID string) (*domain.RSVPStatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	counts, err := s.invitationRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count invitations: %w", err)
	}
	return counts, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, eventID, callerID, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, 0, domain.ErrForbidden
	}
	invs, total, err := s.invitationRepo.ListByEventID(ctx, eventID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, total, nil
}

func (s *invitationService) ListRSVPs(ctx context.Context, eventID, callerID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatorID != callerID {
		return nil, domain.ErrForbidden
	}
	invs, err := s.invitationRepo.ListAllByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
