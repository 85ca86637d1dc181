package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"giftregistry/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func scanInvitation(row interface{ Scan(...any) error }) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var respondedNull sql.NullTime
	err := row.Scan(&inv.ID, &inv.EventID, &inv.GuestEmail, &inv.Status, &respondedNull, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if respondedNull.Valid {
		inv.RespondedAt = &respondedNull.Time
	}
	return inv, nil
}

// Upsert relies on the unique (event_id, guest_email) constraint so a
// concurrent invite and self-RSVP cannot produce duplicate rows. An existing
// row is left untouched: re-inviting never resets a guest's response.
func (r *invitationRepository) Upsert(ctx context.Context, inv *domain.Invitation) (bool, error) {
	query := `
		INSERT INTO invitations (event_id, guest_email, rsvp_status, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, guest_email) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, inv.EventID, inv.GuestEmail, inv.Status, inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict: the pair already exists. Load the existing row so the
			// caller still has the invitation id for the notification link.
			existing, err := r.getByEventAndEmail(ctx, inv.EventID, inv.GuestEmail)
			if err != nil {
				return false, err
			}
			*inv = *existing
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *invitationRepository) getByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, guest_email, rsvp_status, responded_at, created_at
		FROM invitations
		WHERE event_id = $1 AND guest_email = $2
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, eventID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, guest_email, rsvp_status, responded_at, created_at
		FROM invitations
		WHERE id = $1
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id string, status domain.RSVPStatus, respondedAt time.Time) (*domain.Invitation, error) {
	query := `
		UPDATE invitations
		SET rsvp_status = $1, responded_at = $2
		WHERE id = $3
		RETURNING id, event_id, guest_email, rsvp_status, responded_at, created_at
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, status, respondedAt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM invitations
		WHERE event_id = $1 AND guest_email ILIKE '%' || $2 || '%'
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, eventID, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, event_id, guest_email, rsvp_status, responded_at, created_at
		FROM invitations
		WHERE event_id = $1 AND guest_email ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, search, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, 0, err
		}
		invs = append(invs, inv)
	}
	return invs, total, rows.Err()
}

func (r *invitationRepository) ListAllByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `
		SELECT id, event_id, guest_email, rsvp_status, responded_at, created_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitationRepository) CountByStatus(ctx context.Context, eventID string) (*domain.RSVPStatusCounts, error) {
	query := `
		SELECT rsvp_status, COUNT(*)
		FROM invitations
		WHERE event_id = $1
		GROUP BY rsvp_status
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := &domain.RSVPStatusCounts{}
	for rows.Next() {
		var status domain.RSVPStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		switch status {
		case domain.RSVPStatusAttending:
			counts.Attending = n
		case domain.RSVPStatusDeclined:
			counts.Declined = n
		case domain.RSVPStatusPending:
			counts.Pending = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	counts.TotalInvited = counts.Attending + counts.Declined + counts.Pending
	return counts, nil
}
