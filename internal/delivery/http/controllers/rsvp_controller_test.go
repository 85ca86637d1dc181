package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/domain"
)

func TestRSVPController_Invite(t *testing.T) {
	t.Run("invites and reports failures", func(t *testing.T) {
		svc := &fakeInvitationService{invited: 2, failed: []string{"down@example.com"}}
		ctrl := NewRSVPController(testLogger, svc)

		body, _ := json.Marshal(InviteRequest{Emails: []string{"ana@example.com", "down@example.com"}})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invite", bytes.NewReader(body))
		req.SetPathValue("eventID", "ev-1")
		req = authenticated(req, "creator-1", "")
		rec := httptest.NewRecorder()
		ctrl.Invite(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data InviteResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Data.Invited)
		assert.Equal(t, []string{"down@example.com"}, resp.Data.Failed)
		assert.Equal(t, []string{"ana@example.com", "down@example.com"}, svc.lastEmails)
	})

	t.Run("invalid email returns 400", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{})
		body, _ := json.Marshal(InviteRequest{Emails: []string{"not-an-email"}})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invite", bytes.NewReader(body))
		req.SetPathValue("eventID", "ev-1")
		req = authenticated(req, "creator-1", "")
		rec := httptest.NewRecorder()
		ctrl.Invite(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty list returns 400", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{})
		body, _ := json.Marshal(InviteRequest{})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invite", bytes.NewReader(body))
		req.SetPathValue("eventID", "ev-1")
		req = authenticated(req, "creator-1", "")
		rec := httptest.NewRecorder()
		ctrl.Invite(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-creator returns 403", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{inviteErr: domain.ErrForbidden})
		body, _ := json.Marshal(InviteRequest{Emails: []string{"ana@example.com"}})
		req := httptest.NewRequest(http.MethodPost, "/events/ev-1/invite", bytes.NewReader(body))
		req.SetPathValue("eventID", "ev-1")
		req = authenticated(req, "intruder", "")
		rec := httptest.NewRecorder()
		ctrl.Invite(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRSVPController_Respond(t *testing.T) {
	t.Run("records the response without auth", func(t *testing.T) {
		inv := &domain.Invitation{ID: "inv-1", Status: domain.RSVPStatusAttending}
		svc := &fakeInvitationService{invitation: inv}
		ctrl := NewRSVPController(testLogger, svc)

		body, _ := json.Marshal(RespondRequest{Response: "accepted"})
		req := httptest.NewRequest(http.MethodPost, "/rsvp/inv-1/respond", bytes.NewReader(body))
		req.SetPathValue("invitationID", "inv-1")
		rec := httptest.NewRecorder()
		ctrl.Respond(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "accepted", svc.lastResponse)
	})

	t.Run("accepts the response as a query parameter", func(t *testing.T) {
		svc := &fakeInvitationService{invitation: &domain.Invitation{ID: "inv-1"}}
		ctrl := NewRSVPController(testLogger, svc)

		req := httptest.NewRequest(http.MethodPost, "/rsvp/inv-1/respond?response=declined", nil)
		req.SetPathValue("invitationID", "inv-1")
		rec := httptest.NewRecorder()
		ctrl.Respond(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "declined", svc.lastResponse)
	})

	t.Run("unknown query value returns 400", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{})
		req := httptest.NewRequest(http.MethodPost, "/rsvp/inv-1/respond?response=maybe", nil)
		req.SetPathValue("invitationID", "inv-1")
		rec := httptest.NewRecorder()
		ctrl.Respond(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown response value returns 400", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{})
		body, _ := json.Marshal(RespondRequest{Response: "maybe"})
		req := httptest.NewRequest(http.MethodPost, "/rsvp/inv-1/respond", bytes.NewReader(body))
		req.SetPathValue("invitationID", "inv-1")
		rec := httptest.NewRecorder()
		ctrl.Respond(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown invitation returns 404", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeInvitationService{respondErr: domain.ErrNotFound})
		body, _ := json.Marshal(RespondRequest{Response: "declined"})
		req := httptest.NewRequest(http.MethodPost, "/rsvp/missing/respond", bytes.NewReader(body))
		req.SetPathValue("invitationID", "missing")
		rec := httptest.NewRecorder()
		ctrl.Respond(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeEnvelope(t, rec.Body.Bytes())
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestRSVPController_ListInvitations(t *testing.T) {
	t.Run("passes pagination and search through", func(t *testing.T) {
		svc := &fakeInvitationService{
			invitations: []*domain.Invitation{{ID: "inv-1", GuestEmail: "ana@example.com"}},
			listTotal:   5,
		}
		ctrl := NewRSVPController(testLogger, svc)

		req := httptest.NewRequest(http.MethodGet, "/events/ev-1/invitations?page=2&page_size=2&search=ana", nil)
		req.SetPathValue("eventID", "ev-1")
		req = authenticated(req, "creator-1", "")
		rec := httptest.NewRecorder()
		ctrl.ListInvitations(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ana", svc.lastSearch)
		assert.Equal(t, 2, svc.lastParams.Page)
		assert.Equal(t, 2, svc.lastParams.PageSize)

		var resp struct {
			Data ListInvitationsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp.Data.Pagination.Total)
		assert.Equal(t, 3, resp.Data.Pagination.TotalPages)
	})
}

func TestRSVPController_ListRSVPs(t *testing.T) {
	svc := &fakeInvitationService{
		invitations: []*domain.Invitation{
			{ID: "inv-1", Status: domain.RSVPStatusAttending},
			{ID: "inv-2", Status: domain.RSVPStatusPending},
		},
		counts: &domain.RSVPStatusCounts{Attending: 1, Pending: 1, TotalInvited: 2},
	}
	ctrl := NewRSVPController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/rsvps", nil)
	req.SetPathValue("eventID", "ev-1")
	req = authenticated(req, "creator-1", "")
	rec := httptest.NewRecorder()
	ctrl.ListRSVPs(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data ListRSVPsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Invitations, 2)
	assert.Equal(t, 2, resp.Data.Counts.TotalInvited)
}
