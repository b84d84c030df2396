// Package http exposes the QR code service over HTTP: management and
// analytics endpoints for owners, plus the public redirect and tracking
// endpoints hit by scanners.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vadimbarashkov/qrtrack/pkg/auth"
)

// NewRouter builds the chi router. baseURL prefixes the redirect URLs handed
// out for dynamic QR codes.
func NewRouter(
	logger *httplog.Logger,
	signer *auth.Signer,
	baseURL string,
	qrCodeUseCase qrCodeUseCase,
	eventUseCase eventUseCase,
	analyticsUseCase analyticsUseCase,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	validate := newValidator()
	qrCodes := newQRCodeHandler(qrCodeUseCase, validate, baseURL)
	events := newEventHandler(eventUseCase, validate)
	analytics := newAnalyticsHandler(analyticsUseCase)
	authenticate := signer.Middleware(handleUnauthorized)

	r.Get("/r/{id}", qrCodes.redirect)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/qr", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Get("/", qrCodes.list)
				r.Post("/static", qrCodes.createStatic)
				r.Post("/dynamic", qrCodes.createDynamic)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Post("/track", events.track)

				r.Group(func(r chi.Router) {
					r.Use(authenticate)

					r.Get("/", qrCodes.get)
					r.Put("/", qrCodes.updateDestination)
					r.Get("/image", qrCodes.image)
					r.Get("/events", events.list)
					r.Get("/analytics", analytics.analytics)
					r.Get("/anomalies", analytics.anomalies)
				})
			})
		})
	})

	return r
}
