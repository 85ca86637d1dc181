package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"giftregistry/internal/domain"
)

// uniqueViolation is the postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, event_key, creator_id, name, date, description, location, type, created_at, updated_at"

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var locNull sql.NullString
	err := row.Scan(
		&e.ID, &e.EventKey, &e.CreatorID, &e.Name, &e.Date, &e.Description,
		&locNull, &e.Type, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if locNull.Valid {
		e.Location = locNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (event_key, creator_id, name, date, description, location, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var loc any
	if e.Location != "" {
		loc = e.Location
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.EventKey, e.CreatorID, e.Name, e.Date, e.Description, loc, e.Type, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByKey(ctx context.Context, key string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_key = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(key)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *eventRepository) ListByCreatorID(ctx context.Context, creatorID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE creator_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, creatorID)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, after time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date > $1 ORDER BY date ASC`
	return r.list(ctx, query, after)
}

func (r *eventRepository) ListByType(ctx context.Context, eventType domain.EventType) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE type = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventType)
}

func (r *eventRepository) Search(ctx context.Context, searchQuery string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, searchQuery)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, name, description, location *string, date *time.Time, eventType *domain.EventType) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *location)
		n++
	}
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *date)
		n++
	}
	if eventType != nil {
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", n))
		args = append(args, *eventType)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
