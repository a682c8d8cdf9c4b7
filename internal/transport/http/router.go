package http

import (
	"net/http"

	"github.com/gameday-relay/internal/application/gameday"
	"github.com/gameday-relay/internal/application/subscription"
	"github.com/gameday-relay/internal/config"
	"github.com/gameday-relay/internal/transport/http/handler"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	subscriptionSvc := subscription.NewService(deps.SubscriberRepo, deps.Sender, deps.Logger)
	gamedaySvc := gameday.NewService(deps.Schedule, deps.Feed, deps.SubscriberRepo, deps.Sender, cfg, deps.Logger)

	webhookH := handler.NewWebhookHandler(cfg.VerifyToken, subscriptionSvc, deps.Logger)
	cronH := handler.NewCronHandler(gamedaySvc, deps.Logger)
	healthH := handler.NewHealthHandler()

	// Paths are dictated by the platform webhook registration and the
	// scheduler job, so there is no version prefix.
	r.Get("/webhook", webhookH.Verify)
	r.Post("/webhook", webhookH.Receive)
	r.Get("/cron", cronH.Trigger)
	r.Get("/health-check/{action}", healthH.Ping)

	return r
}
