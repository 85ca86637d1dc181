package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"giftregistry/internal/delivery/http/controllers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Gift reads take OptionalAuth so anonymous guests holding an event link can
// browse the registry while an authenticated creator is still recognized.
func NewRouter(
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
	giftController *controllers.GiftController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)

	// Event directory
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/public", eventController.ListPublicEvents)
	mux.HandleFunc("GET /events/upcoming", eventController.ListUpcomingEvents)
	mux.HandleFunc("GET /events/search", eventController.SearchEvents)
	mux.HandleFunc("GET /events/category/{type}", eventController.ListEventsByType)
	mux.HandleFunc("GET /events/me", requireAuth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/key/{eventKey}", eventController.GetEventByKey)
	mux.HandleFunc("GET /events/dashboard/{eventID}", requireAuth(eventController.GetDashboard))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))

	// Invitations and RSVPs
	mux.HandleFunc("POST /events/{eventID}/invite", requireAuth(rsvpController.Invite))
	mux.HandleFunc("GET /events/{eventID}/invitations", requireAuth(rsvpController.ListInvitations))
	mux.HandleFunc("GET /events/{eventID}/rsvps", requireAuth(rsvpController.ListRSVPs))
	mux.HandleFunc("POST /rsvp/{invitationID}/respond", rsvpController.Respond)
	mux.HandleFunc("GET /rsvp/{invitationID}", rsvpController.GetInvitation)

	// Gift registry
	mux.HandleFunc("POST /gifts", requireAuth(giftController.AddGift))
	mux.HandleFunc("GET /gifts/event/{eventID}", optionalAuth(giftController.ListGifts))
	mux.HandleFunc("GET /gifts/{giftID}", optionalAuth(giftController.GetGift))
	mux.HandleFunc("POST /gifts/{giftID}/confirm", requireAuth(giftController.ConfirmGift))
	mux.HandleFunc("DELETE /gifts/{giftID}", requireAuth(giftController.CancelGift))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
