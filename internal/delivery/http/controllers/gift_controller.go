package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"giftregistry/internal/delivery/http/helpers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/domain"
)

// AddGiftRequest is the request body for POST /gifts.
type AddGiftRequest struct {
	EventID    string  `json:"event_id"`
	Name       string  `json:"name"`
	Recipient  string  `json:"recipient"`
	Notes      string  `json:"notes"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	ProductURL string  `json:"product_url"`
	Store      string  `json:"store"`
}

// Validate implements Validator.
func (g AddGiftRequest) Validate() []string {
	var errs []string
	if g.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if g.Name == "" {
		errs = append(errs, "name is required")
	}
	if g.Recipient == "" {
		errs = append(errs, "recipient is required")
	}
	if g.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	return errs
}

// AddGiftSuccessResponse is the success response envelope for POST /gifts (201).
type AddGiftSuccessResponse struct {
	Data  *domain.Gift      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type GiftController struct {
	Logger  *slog.Logger
	Service domain.GiftService
}

func NewGiftController(logger *slog.Logger, svc domain.GiftService) *GiftController {
	return &GiftController{
		Logger:  logger,
		Service: svc,
	}
}

// AddGift godoc
// @Summary Claim a gift for an event
// @Description Creates a PLANNED gift claimed by the authenticated user. The event creator is never shown the claim.
// @Tags gifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gift body AddGiftRequest true "Gift data"
// @Success 201 {object} controllers.AddGiftSuccessResponse "data contains the created gift"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts [post]
func (c *GiftController) AddGift(w http.ResponseWriter, r *http.Request) {
	var req AddGiftRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	gift := &domain.Gift{
		EventID:    req.EventID,
		Name:       req.Name,
		Recipient:  req.Recipient,
		Notes:      req.Notes,
		Price:      req.Price,
		Image:      req.Image,
		ProductURL: req.ProductURL,
		Store:      req.Store,
	}
	if err := c.Service.AddGift(r.Context(), gift, userID); err != nil {
		c.writeGiftError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, gift)
}

// ListGiftsSuccessResponse is the success response envelope for GET /gifts/event/{eventID} (200).
type ListGiftsSuccessResponse struct {
	Data  []*domain.Gift    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGifts godoc
// @Summary List gifts for an event
// @Description Returns the event's gift registry. The event creator always receives an empty list; anonymous callers and other users see every gift. Authentication is optional.
// @Tags gifts
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListGiftsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/event/{eventID} [get]
func (c *GiftController) ListGifts(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	gifts, err := c.Service.ListGifts(r.Context(), eventID, viewerID)
	if err != nil {
		c.writeGiftError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gifts)
}

// GetGiftSuccessResponse is the success response envelope for GET /gifts/{giftID} (200).
type GetGiftSuccessResponse struct {
	Data  *domain.Gift      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetGift godoc
// @Summary Get a single gift
// @Description Returns the gift. The event creator is refused with 403. Authentication is optional.
// @Tags gifts
// @Produce json
// @Param giftID path string true "Gift ID (UUID)"
// @Success 200 {object} controllers.GetGiftSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (event creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID} [get]
func (c *GiftController) GetGift(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("giftID")
	if giftID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing giftID")
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())
	gift, err := c.Service.GetGift(r.Context(), giftID, viewerID)
	if err != nil {
		c.writeGiftError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gift)
}

// ConfirmGiftSuccessResponse is the success response envelope for POST /gifts/{giftID}/confirm (200).
type ConfirmGiftSuccessResponse struct {
	Data  *domain.Gift      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ConfirmGift godoc
// @Summary Confirm a gift purchase
// @Description Transitions the gift from PLANNED to PURCHASED. Only the user who claimed the gift can confirm; a gift already cancelled or purchased yields 409.
// @Tags gifts
// @Produce json
// @Security BearerAuth
// @Param giftID path string true "Gift ID (UUID)"
// @Success 200 {object} controllers.ConfirmGiftSuccessResponse "data contains the updated gift"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the planner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not PLANNED)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID}/confirm [post]
func (c *GiftController) ConfirmGift(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("giftID")
	if giftID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing giftID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	gift, err := c.Service.ConfirmGift(r.Context(), giftID, userID)
	if err != nil {
		c.writeGiftError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gift)
}

// CancelGiftSuccessResponse is the success response envelope for DELETE /gifts/{giftID} (200).
type CancelGiftSuccessResponse struct {
	Data  *domain.Gift      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CancelGift godoc
// @Summary Cancel a gift claim
// @Description Transitions the gift from PLANNED to CANCELLED, releasing the claim. Only the user who claimed the gift can cancel; a gift already cancelled or purchased yields 409.
// @Tags gifts
// @Produce json
// @Security BearerAuth
// @Param giftID path string true "Gift ID (UUID)"
// @Success 200 {object} controllers.CancelGiftSuccessResponse "data contains the cancelled gift"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the planner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not PLANNED)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /gifts/{giftID} [delete]
func (c *GiftController) CancelGift(w http.ResponseWriter, r *http.Request) {
	giftID := r.PathValue("giftID")
	if giftID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing giftID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	gift, err := c.Service.CancelGift(r.Context(), giftID, userID)
	if err != nil {
		c.writeGiftError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, gift)
}

func (c *GiftController) writeGiftError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "gift is no longer planned")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid input")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
