package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/CharlesOsang017/keja-hook/internal/http/lease"
	"github.com/CharlesOsang017/keja-hook/internal/http/membership"
	"github.com/CharlesOsang017/keja-hook/internal/http/middleware"
	"github.com/CharlesOsang017/keja-hook/internal/http/partnership"
	"github.com/CharlesOsang017/keja-hook/internal/http/payment"
	"github.com/CharlesOsang017/keja-hook/internal/http/property"
	"github.com/CharlesOsang017/keja-hook/internal/http/user"
)

func New(
	jwtSecret string,
	paymentsV1 *payment.Handler,
	membershipsV1 *membership.Handler,
	propertiesV1 *property.Handler,
	leasesV1 *lease.Handler,
	partnershipsV1 *partnership.Handler,
	usersV1 *user.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		// The gateway posts settlement callbacks here without credentials.
		r.With(chimiddleware.AllowContentType("application/json")).
			Post("/payments/callback", paymentsV1.Callback)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtSecret))

			r.Route("/payments", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				paymentsV1.Routes(r)
			})

			r.Route("/memberships", membershipsV1.Routes)

			r.Route("/properties", propertiesV1.Routes)

			r.Route("/leases", leasesV1.Routes)

			r.Route("/partnerships", partnershipsV1.Routes)

			r.Route("/users", usersV1.Routes)
		})
	})

	return router
}
