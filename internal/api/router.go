package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/availability"
	"github.com/bookwell/appointment-backend/internal/booking"
	"github.com/bookwell/appointment-backend/internal/catalog"
	"github.com/bookwell/appointment-backend/internal/user"
)

type RouterConfig struct {
	Users          *user.Service
	Catalog        *catalog.Catalog
	Availabilities *availability.Service
	Bookings       *booking.Service
	PgPool         *pgxpool.Pool
	Redis          *redis.Client
	Logger         *zap.Logger
	Env            string
	Version        string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", registerHandler(cfg.Users))
		r.Post("/login", loginHandler(cfg.Users))
		r.Post("/refresh", refreshTokenHandler(cfg.Users))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Users))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", listUsersHandler(cfg.Users))
			r.Get("/{id}", getUserHandler(cfg.Users))
			r.Put("/{id}", updateUserHandler(cfg.Users))
			r.Delete("/{id}", deactivateUserHandler(cfg.Users))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", listServicesHandler(cfg.Catalog))
			r.Post("/", createServiceHandler(cfg.Catalog))
			r.Get("/{id}", getServiceHandler(cfg.Catalog))
			r.Put("/{id}", updateServiceHandler(cfg.Catalog))
			r.Delete("/{id}", deleteServiceHandler(cfg.Catalog))
		})

		r.Route("/provider-services", func(r chi.Router) {
			r.Get("/", listOfferingsHandler(cfg.Catalog))
			r.Post("/", createOfferingHandler(cfg.Catalog))
			r.Get("/{id}", getOfferingHandler(cfg.Catalog))
			r.Put("/{id}", updateOfferingHandler(cfg.Catalog))
			r.Delete("/{id}", deleteOfferingHandler(cfg.Catalog))
		})

		r.Route("/availability", func(r chi.Router) {
			r.Get("/", listAvailabilitiesHandler(cfg.Availabilities))
			r.Post("/", createAvailabilityHandler(cfg.Availabilities))
			r.Get("/{id}", getAvailabilityHandler(cfg.Availabilities))
			r.Put("/{id}", updateAvailabilityHandler(cfg.Availabilities))
			r.Delete("/{id}", disableAvailabilityHandler(cfg.Availabilities))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", listAppointmentsHandler(cfg.Bookings))
			r.Post("/", createAppointmentHandler(cfg.Bookings))
			r.Get("/{id}", getAppointmentHandler(cfg.Bookings))
			r.Put("/{id}/status", updateAppointmentStatusHandler(cfg.Bookings))
			r.Delete("/{id}", cancelAppointmentHandler(cfg.Bookings))
		})
	})

	return r
}
