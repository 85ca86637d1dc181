package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// InviteRequest is the request body for POST /events/{eventID}/invite.
type InviteRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	var errs []string
	if len(i.Emails) == 0 {
		errs = append(errs, "emails is required")
	}
	for _, e := range i.Emails {
		if !emailRegex.MatchString(e) {
			errs = append(errs, "invalid email: "+e)
		}
	}
	return errs
}

// InviteResponse is the data payload for POST /events/{eventID}/invite (200).
type InviteResponse struct {
	Invited int      `json:"invited"`
	Failed  []string `json:"failed,omitempty"`
}

// InviteSuccessResponse is the success response envelope for POST /events/{eventID}/invite (200).
type InviteSuccessResponse struct {
	Data  InviteResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewRSVPController(logger *slog.Logger, svc domain.InvitationService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Invite godoc
// @Summary Invite guests to an event
// @Description Creates a PENDING invitation per email and sends each guest an RSVP link. Inviting an email that is already invited is a no-op; the existing response is kept. Only the event creator can invite.
// @Tags rsvp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body InviteRequest true "Guest emails"
// @Success 200 {object} controllers.InviteSuccessResponse "data contains counts and any emails whose notification failed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invite [post]
func (c *RSVPController) Invite(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invited, failed, err := c.Service.Invite(r.Context(), eventID, userID, req.Emails)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteResponse{Invited: invited, Failed: failed})
}

// RespondRequest is the request body for POST /rsvp/{invitationID}/respond.
type RespondRequest struct {
	Response string `json:"response"`
}

// Validate implements Validator.
func (rr RespondRequest) Validate() []string {
	if rr.Response != "accepted" && rr.Response != "declined" {
		return []string{`response must be "accepted" or "declined"`}
	}
	return nil
}

// RespondSuccessResponse is the success response envelope for POST /rsvp/{invitationID}/respond (200).
type RespondSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Respond godoc
// @Summary Respond to an invitation
// @Description Records the guest's RSVP. The response comes from the ?response query parameter (the form email links use) or, if absent, from the JSON body. No authentication: possession of the invitation link is the credential. A guest may respond again; the latest response wins.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param invitationID path string true "Invitation ID (UUID)"
// @Param response query string false "accepted or declined"
// @Param body body RespondRequest false "accepted or declined, when not passed as a query parameter"
// @Success 200 {object} controllers.RespondSuccessResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{invitationID}/respond [post]
func (c *RSVPController) Respond(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}
	req := RespondRequest{Response: r.URL.Query().Get("response")}
	if req.Response == "" {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	} else if errs := req.Validate(); len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, errs[0])
		return
	}
	inv, err := c.Service.Respond(r.Context(), invitationID, req.Response)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// GetInvitationSuccessResponse is the success response envelope for GET /rsvp/{invitationID} (200).
type GetInvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetInvitation godoc
// @Summary Get an invitation
// @Description Returns the invitation so the RSVP page can show the guest's current response. No authentication.
// @Tags rsvp
// @Produce json
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.GetInvitationSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{invitationID} [get]
func (c *RSVPController) GetInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}
	inv, err := c.Service.GetInvitation(r.Context(), invitationID)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ListInvitationsResponse is the data payload for GET /events/{eventID}/invitations (200).
type ListInvitationsResponse struct {
	Invitations []*domain.Invitation   `json:"invitations"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

// ListInvitationsSuccessResponse is the success response envelope for GET /events/{eventID}/invitations (200).
type ListInvitationsSuccessResponse struct {
	Data  ListInvitationsResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListInvitations godoc
// @Summary List invitations for an event
// @Description Paginated invitation list with optional guest email search. Only the event creator can list.
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param search query string false "Filter by guest email substring"
// @Success 200 {object} controllers.ListInvitationsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *RSVPController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	search := r.URL.Query().Get("search")
	invs, total, err := c.Service.ListInvitations(r.Context(), eventID, userID, search, params)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListInvitationsResponse{
		Invitations: invs,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListRSVPsResponse is the data payload for GET /events/{eventID}/rsvps (200).
type ListRSVPsResponse struct {
	Counts      *domain.RSVPStatusCounts `json:"counts"`
	Invitations []*domain.Invitation     `json:"invitations"`
}

// ListRSVPsSuccessResponse is the success response envelope for GET /events/{eventID}/rsvps (200).
type ListRSVPsSuccessResponse struct {
	Data  ListRSVPsResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListRSVPs godoc
// @Summary List RSVP responses for an event
// @Description Returns status counts plus every invitation with its current response. Only the event creator can list.
// @Tags rsvp
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListRSVPsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvps [get]
func (c *RSVPController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invs, err := c.Service.ListRSVPs(r.Context(), eventID, userID)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	counts, err := c.Service.StatusCounts(r.Context(), eventID)
	if err != nil {
		c.writeRSVPError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRSVPsResponse{Counts: counts, Invitations: invs})
}

func (c *RSVPController) writeRSVPError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
