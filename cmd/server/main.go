package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"giftregistry/config"
	_ "giftregistry/docs"
	"giftregistry/internal/adapters/auth"
	"giftregistry/internal/adapters/email"
	delivery "giftregistry/internal/delivery/http"
	"giftregistry/internal/delivery/http/controllers"
	"giftregistry/internal/delivery/http/middleware"
	"giftregistry/internal/repository/postgres"
	"giftregistry/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Gift Registry API
// @version 1.0
// @description Event directory, invitation ledger, and organizer-blind gift registry.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	giftRepo := postgres.NewGiftRepository(db)

	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to parse email templates", "err", err)
		os.Exit(1)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKey,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESInsecureSkip,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	eventService := services.NewEventService(eventRepo, emailService, logger, serviceTimeout)
	invitationService := services.NewInvitationService(eventRepo, invitationRepo, emailService, cfg.AppBaseURL, logger, serviceTimeout)
	giftService := services.NewGiftService(eventRepo, giftRepo, serviceTimeout)
	dashboardService := services.NewDashboardService(eventRepo, invitationRepo, giftRepo, serviceTimeout)

	_, verifier := auth.NewJWTTokens(cfg.JWTSecret)

	eventController := controllers.NewEventController(logger, eventService, dashboardService)
	rsvpController := controllers.NewRSVPController(logger, invitationService)
	giftController := controllers.NewGiftController(logger, giftService)

	mux := delivery.NewRouter(eventController, rsvpController, giftController, verifier)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
