package postgres

import (
	"context"
	"database/sql"
	"errors"

	"giftregistry/internal/domain"
)

type giftRepository struct {
	DB *sql.DB
}

func NewGiftRepository(db *sql.DB) domain.GiftRepository {
	return &giftRepository{
		DB: db,
	}
}

const giftColumns = "id, event_id, name, recipient, notes, price, image, product_url, store, planned_by_id, status, created_at, updated_at"

func scanGift(row interface{ Scan(...any) error }) (*domain.Gift, error) {
	g := &domain.Gift{}
	var notesNull, imageNull, urlNull, storeNull sql.NullString
	err := row.Scan(
		&g.ID, &g.EventID, &g.Name, &g.Recipient, &notesNull, &g.Price,
		&imageNull, &urlNull, &storeNull, &g.PlannedByID, &g.Status,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notesNull.Valid {
		g.Notes = notesNull.String
	}
	if imageNull.Valid {
		g.Image = imageNull.String
	}
	if urlNull.Valid {
		g.ProductURL = urlNull.String
	}
	if storeNull.Valid {
		g.Store = storeNull.String
	}
	return g, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *giftRepository) Create(ctx context.Context, g *domain.Gift) error {
	query := `
		INSERT INTO gifts (event_id, name, recipient, notes, price, image, product_url, store, planned_by_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		g.EventID, g.Name, g.Recipient, nullable(g.Notes), g.Price,
		nullable(g.Image), nullable(g.ProductURL), nullable(g.Store),
		g.PlannedByID, g.Status, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
}

func (r *giftRepository) GetByID(ctx context.Context, id string) (*domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1`
	g, err := scanGift(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *giftRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	gifts := make([]*domain.Gift, 0)
	for rows.Next() {
		g, err := scanGift(rows)
		if err != nil {
			return nil, err
		}
		gifts = append(gifts, g)
	}
	return gifts, rows.Err()
}

// UpdateStatus is a compare-and-swap on the status column: the row only moves
// when it is still in the expected status. Under two concurrent transitions on
// the same PLANNED gift exactly one UPDATE matches; the loser gets ErrConflict.
func (r *giftRepository) UpdateStatus(ctx context.Context, giftID string, from, to domain.GiftStatus) (*domain.Gift, error) {
	query := `
		UPDATE gifts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + giftColumns + `
	`
	g, err := scanGift(r.DB.QueryRowContext(ctx, query, to, giftID, from))
	if err == nil {
		return g, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// No row matched: either the gift is gone or its status already moved.
	if _, getErr := r.GetByID(ctx, giftID); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrConflict
}

func (r *giftRepository) CountByStatus(ctx context.Context, eventID string) (*domain.GiftStatusTotals, error) {
	query := `
		SELECT status, COUNT(*)
		FROM gifts
		WHERE event_id = $1
		GROUP BY status
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := &domain.GiftStatusTotals{}
	for rows.Next() {
		var status domain.GiftStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		switch status {
		case domain.GiftStatusPlanned:
			totals.Planned = n
		case domain.GiftStatusCancelled:
			totals.Cancelled = n
		case domain.GiftStatusPurchased:
			totals.Purchased = n
		}
	}
	return totals, rows.Err()
}
