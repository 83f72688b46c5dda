package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pharmacare/internal/http/auth"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/report"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/transaction"
)

type Handlers struct {
	Auth          *auth.Handler
	Products      *product.Handler
	Customers     *customer.Handler
	Prescriptions *prescription.Handler
	Transactions  *transaction.Handler
	Checkout      *checkout.Handler
	Reports       *report.Handler
	Settings      *settings.Handler
	Backup        *backup.Handler
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "PharmaCare API is running"})
}

func New(allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/api/health", health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Products.Routes(r)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Customers.Routes(r)
		})

		r.Route("/prescriptions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Prescriptions.Routes(r)
		})

		r.Route("/transactions", h.Transactions.Routes)

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Checkout.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})

		r.Route("/backup", h.Backup.Routes)
	})

	return router
}
