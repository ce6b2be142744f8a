package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/esperanzagt/donations/docs" // swagger docs
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)
		r.HandleFunc("/swagger/*", httpSwagger.Handler())

		r.Route("/donations", func(r chi.Router) {
			r.Post("/sign", h.SignDonation)
			r.Post("/capture-context", h.CaptureContext)

			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit)
				r.Post("/callbacks/cybersource", h.CybersourceCallback)
			})
		})

		r.Route("/private", func(r chi.Router) {
			r.Use(mw.APIKeyAuth)
			r.Get("/donations", h.Donations)
		})
	})

	return mux
}
