package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventCreatedEmailData holds data for the email sent to the creator after an
// event is created. It carries the share key the creator hands out to guests.
type EventCreatedEmailData struct {
	Email     string
	EventName string
	EventKey  string
}

// RSVPInvitationEmailData holds data for the RSVP invitation email. The
// response link embeds the invitation ID.
type RSVPInvitationEmailData struct {
	Email        string
	EventName    string
	EventDate    string
	InvitationID string
	ResponseURL  string
}

// EmailService defines the contract for sending domain-level emails.
// All sends are best-effort from the caller's perspective.
type EmailService interface {
	SendEventCreated(ctx context.Context, data *EventCreatedEmailData) error
	SendRSVPInvitation(ctx context.Context, data *RSVPInvitationEmailData) error
}
