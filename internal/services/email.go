package services

import (
	"context"
	"fmt"
	"log/slog"

	"giftregistry/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventCreated sends the share-key email using the "event_created" template.
func (s *emailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("event created email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_created", data)
	if err != nil {
		return fmt.Errorf("failed to render event_created template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event created email: %w", err)
	}
	s.logger.InfoContext(ctx, "event created email sent", "to", data.Email)
	return nil
}

// SendRSVPInvitation sends the RSVP invitation email using the "rsvp_invitation" template.
func (s *emailService) SendRSVPInvitation(ctx context.Context, data *domain.RSVPInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp invitation email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_invitation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp invitation email: %w", err)
	}
	s.logger.InfoContext(ctx, "rsvp invitation sent", "to", data.Email)
	return nil
}
