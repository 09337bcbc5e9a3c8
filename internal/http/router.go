package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/invoicer/internal/http/customer"
	"github.com/MrJamesThe3rd/invoicer/internal/http/export"
	"github.com/MrJamesThe3rd/invoicer/internal/http/invoice"
	auth "github.com/MrJamesThe3rd/invoicer/internal/http/middleware"
	"github.com/MrJamesThe3rd/invoicer/internal/http/permission"
	"github.com/MrJamesThe3rd/invoicer/internal/http/report"
	"github.com/MrJamesThe3rd/invoicer/internal/http/statement"
	access "github.com/MrJamesThe3rd/invoicer/internal/permission"
)

// Options configures the cross-cutting middleware of the router.
type Options struct {
	JWTSecret      []byte
	Policy         *access.Policy
	AllowedOrigins []string
}

func New(
	opts Options,
	customersV1 *customer.Handler,
	invoicesV1 *invoice.Handler,
	statementsV1 *statement.Handler,
	exportV1 *export.Handler,
	reportV1 *report.Handler,
	meV1 *permission.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Identity(opts.JWTSecret))
		r.Use(auth.PathGate(opts.Policy))

		r.Route("/customers", customersV1.Routes)
		r.Route("/invoices", invoicesV1.Routes)

		r.Route("/statements", func(r chi.Router) {
			statementsV1.Routes(r)
			exportV1.Routes(r)
		})

		r.Route("/activity-report", reportV1.Routes)
		r.Route("/me", meV1.Routes)
	})

	return router
}
