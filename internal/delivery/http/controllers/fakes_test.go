package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// authenticated returns the request with a fake authenticated user in context,
// as the auth middleware would leave it.
func authenticated(r *http.Request, userID, email string) *http.Request {
	return r.WithContext(middleware.SetUser(r.Context(), userID, email))
}

func decodeEnvelope(t *testing.T, body []byte) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr        error
	lastCreated      *domain.Event
	lastCreatorEmail string

	byID      map[string]*domain.Event
	byKey     map[string]*domain.Event
	listErr   error
	list      []*domain.Event
	updated   *domain.Event
	updateErr error
	deleteErr error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event, creatorEmail string) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-1"
	event.EventKey = "abc123def0"
	f.lastCreated = event
	f.lastCreatorEmail = creatorEmail
	return nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	if e, ok := f.byID[eventID]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventByKey(ctx context.Context, key string) (*domain.Event, error) {
	if e, ok := f.byKey[key]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListPublicEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) ListEventsByCreator(ctx context.Context, creatorID string) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) ListEventsByType(ctx context.Context, eventType domain.EventType) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) SearchEvents(ctx context.Context, query string) ([]*domain.Event, error) {
	return f.list, f.listErr
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, creatorID string, name, description, location *string, date *time.Time, eventType *domain.EventType) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, creatorID string) error {
	return f.deleteErr
}

// fakeDashboardService implements domain.DashboardService for handler tests.
type fakeDashboardService struct {
	dashboard *domain.Dashboard
	err       error
}

func (f *fakeDashboardService) BuildDashboard(ctx context.Context, eventID, requesterID string) (*domain.Dashboard, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard, nil
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	inviteErr    error
	invited      int
	failed       []string
	lastEmails   []string
	respondErr   error
	invitation   *domain.Invitation
	listErr      error
	invitations  []*domain.Invitation
	listTotal    int
	lastSearch   string
	lastParams   domain.PaginationParams
	counts       *domain.RSVPStatusCounts
	countsErr    error
	lastResponse string
}

func (f *fakeInvitationService) Invite(ctx context.Context, eventID, creatorID string, emails []string) (int, []string, error) {
	if f.inviteErr != nil {
		return 0, nil, f.inviteErr
	}
	f.lastEmails = emails
	return f.invited, f.failed, nil
}

func (f *fakeInvitationService) Respond(ctx context.Context, invitationID, response string) (*domain.Invitation, error) {
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	f.lastResponse = response
	return f.invitation, nil
}

func (f *fakeInvitationService) GetInvitation(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	if f.invitation == nil {
		return nil, domain.ErrNotFound
	}
	return f.invitation, nil
}

func (f *fakeInvitationService) StatusCounts(ctx context.Context, eventID string) (*domain.RSVPStatusCounts, error) {
	return f.counts, f.countsErr
}

func (f *fakeInvitationService) ListInvitations(ctx context.Context, eventID, callerID, search string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.lastSearch = search
	f.lastParams = params
	return f.invitations, f.listTotal, nil
}

func (f *fakeInvitationService) ListRSVPs(ctx context.Context, eventID, callerID string) ([]*domain.Invitation, error) {
	return f.invitations, f.listErr
}

// fakeGiftService implements domain.GiftService for handler tests.
type fakeGiftService struct {
	addErr      error
	lastGift    *domain.Gift
	lastPlanner string
	gifts       []*domain.Gift
	listErr     error
	gift        *domain.Gift
	getErr      error
	confirmErr  error
	cancelErr   error
}

func (f *fakeGiftService) AddGift(ctx context.Context, gift *domain.Gift, plannerID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	gift.ID = "gift-1"
	gift.Status = domain.GiftStatusPlanned
	gift.PlannedByID = plannerID
	f.lastGift = gift
	f.lastPlanner = plannerID
	return nil
}

func (f *fakeGiftService) ListGifts(ctx context.Context, eventID, viewerID string) ([]*domain.Gift, error) {
	return f.gifts, f.listErr
}

func (f *fakeGiftService) GetGift(ctx context.Context, giftID, viewerID string) (*domain.Gift, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.gift, nil
}

func (f *fakeGiftService) ConfirmGift(ctx context.Context, giftID, requesterID string) (*domain.Gift, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return f.gift, nil
}

func (f *fakeGiftService) CancelGift(ctx context.Context, giftID, requesterID string) (*domain.Gift, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return f.gift, nil
}
