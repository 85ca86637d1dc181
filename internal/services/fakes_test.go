package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"giftregistry/internal/domain"
)

// testLogger discards output so tests don't assert on log lines.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID          map[string]*domain.Event
	nextID        int
	createErr     error // if set, Create returns this error
	conflictsLeft int   // number of Creates that fail with ErrConflict first
	keyTaken      map[string]bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:     make(map[string]*domain.Event),
		keyTaken: make(map[string]bool),
		nextID:   1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return domain.ErrConflict
	}
	if f.keyTaken[e.EventKey] {
		return domain.ErrConflict
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	f.keyTaken[e.EventKey] = true
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByKey(ctx context.Context, key string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.EventKey == key {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListPublic(ctx context.Context) ([]*domain.Event, error) {
	return f.sorted(func(*domain.Event) bool { return true }), nil
}

func (f *fakeEventRepo) ListByCreatorID(ctx context.Context, creatorID string) ([]*domain.Event, error) {
	return f.sorted(func(e *domain.Event) bool { return e.CreatorID == creatorID }), nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, after time.Time) ([]*domain.Event, error) {
	return f.sorted(func(e *domain.Event) bool { return e.Date.After(after) }), nil
}

func (f *fakeEventRepo) ListByType(ctx context.Context, eventType domain.EventType) ([]*domain.Event, error) {
	return f.sorted(func(e *domain.Event) bool { return e.Type == eventType }), nil
}

func (f *fakeEventRepo) Search(ctx context.Context, query string) ([]*domain.Event, error) {
	q := strings.ToLower(query)
	return f.sorted(func(e *domain.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q)
	}), nil
}

func (f *fakeEventRepo) sorted(keep func(*domain.Event) bool) []*domain.Event {
	var out []*domain.Event
	for _, e := range f.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, name, description, location *string, date *time.Time, eventType *domain.EventType) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		e.Name = *name
	}
	if description != nil {
		e.Description = *description
	}
	if location != nil {
		e.Location = *location
	}
	if date != nil {
		e.Date = *date
	}
	if eventType != nil {
		e.Type = *eventType
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	byID      map[string]*domain.Invitation
	nextID    int
	upsertErr error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{
		byID:   make(map[string]*domain.Invitation),
		nextID: 1,
	}
}

func (f *fakeInvitationRepo) Upsert(ctx context.Context, inv *domain.Invitation) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	for _, existing := range f.byID {
		if existing.EventID == inv.EventID && existing.GuestEmail == inv.GuestEmail {
			*inv = *existing
			return false, nil
		}
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byID[inv.ID] = inv
	return true, nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	if inv, ok := f.byID[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) UpdateStatus(ctx context.Context, id string, status domain.RSVPStatus, respondedAt time.Time) (*domain.Invitation, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv.Status = status
	inv.RespondedAt = &respondedAt
	return inv, nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	all := f.forEvent(eventID)
	var filtered []*domain.Invitation
	for _, inv := range all {
		if search == "" || strings.Contains(inv.GuestEmail, search) {
			filtered = append(filtered, inv)
		}
	}
	total := len(filtered)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (f *fakeInvitationRepo) ListAllByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	return f.forEvent(eventID), nil
}

func (f *fakeInvitationRepo) CountByStatus(ctx context.Context, eventID string) (*domain.RSVPStatusCounts, error) {
	counts := &domain.RSVPStatusCounts{}
	for _, inv := range f.forEvent(eventID) {
		switch inv.Status {
		case domain.RSVPStatusAttending:
			counts.Attending++
		case domain.RSVPStatusDeclined:
			counts.Declined++
		case domain.RSVPStatusPending:
			counts.Pending++
		}
		counts.TotalInvited++
	}
	return counts, nil
}

func (f *fakeInvitationRepo) forEvent(eventID string) []*domain.Invitation {
	var out []*domain.Invitation
	for _, inv := range f.byID {
		if inv.EventID == eventID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// fakeGiftRepo is an in-memory GiftRepository for tests. The mutex makes
// UpdateStatus a real compare-and-swap so concurrency tests are meaningful.
type fakeGiftRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Gift
	nextID    int
	createErr error
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{
		byID:   make(map[string]*domain.Gift),
		nextID: 1,
	}
}

func (f *fakeGiftRepo) Create(ctx context.Context, g *domain.Gift) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	g.ID = fmt.Sprintf("gift-%d", f.nextID)
	f.nextID++
	f.byID[g.ID] = g
	return nil
}

func (f *fakeGiftRepo) GetByID(ctx context.Context, id string) (*domain.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.byID[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGiftRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Gift
	for _, g := range f.byID {
		if g.EventID == eventID {
			copied := *g
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGiftRepo) UpdateStatus(ctx context.Context, giftID string, from, to domain.GiftStatus) (*domain.Gift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byID[giftID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if g.Status != from {
		return nil, domain.ErrConflict
	}
	g.Status = to
	g.UpdatedAt = time.Now()
	copied := *g
	return &copied, nil
}

func (f *fakeGiftRepo) CountByStatus(ctx context.Context, eventID string) (*domain.GiftStatusTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := &domain.GiftStatusTotals{}
	for _, g := range f.byID {
		if g.EventID != eventID {
			continue
		}
		switch g.Status {
		case domain.GiftStatusPlanned:
			totals.Planned++
		case domain.GiftStatusCancelled:
			totals.Cancelled++
		case domain.GiftStatusPurchased:
			totals.Purchased++
		}
	}
	return totals, nil
}

// fakeEmailService records sends and optionally fails them.
type fakeEmailService struct {
	mu             sync.Mutex
	eventCreated   []*domain.EventCreatedEmailData
	rsvpInvitation []*domain.RSVPInvitationEmailData
	sendErr        error
}

func (f *fakeEmailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.eventCreated = append(f.eventCreated, data)
	return nil
}

func (f *fakeEmailService) SendRSVPInvitation(ctx context.Context, data *domain.RSVPInvitationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.rsvpInvitation = append(f.rsvpInvitation, data)
	return nil
}
