// Package routes assembles the HTTP surface: the route table, the
// middleware stack, and the admin gate placement.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/shashiranjanraj/glowmart/app/controllers"
	"github.com/shashiranjanraj/glowmart/app/services"
	"github.com/shashiranjanraj/glowmart/pkg/auth"
	"github.com/shashiranjanraj/glowmart/pkg/metrics"
	"github.com/shashiranjanraj/glowmart/pkg/middleware"
	"github.com/shashiranjanraj/glowmart/pkg/reqid"
	"github.com/shashiranjanraj/glowmart/pkg/response"
)

// Deps are the wired services the routes need.
type Deps struct {
	Products *services.ProductService
	Orders   *services.OrderService
	Auth     *services.AuthService
	Tokens   *auth.Manager

	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
}

// New builds the router.
//
// Middleware order (outermost first): metrics, recovery, request id,
// request logging, CORS. The per-IP rate limit covers the API routes but
// not /metrics, so scrapes are never throttled.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(d.CORSOrigins))

	r.Get("/metrics", metrics.Handler())

	productCtl := controllers.NewProductController(d.Products)
	orderCtl := controllers.NewOrderController(d.Orders)
	authCtl := controllers.NewAuthController(d.Auth)
	admin := middleware.RequireAdmin(d.Tokens)

	r.Group(func(r chi.Router) {
		if d.RateLimit > 0 {
			r.Use(httprate.LimitByIP(d.RateLimit, d.RateWindow))
		}

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/auth/login", authCtl.Login)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productCtl.List)
			r.Get("/meta", productCtl.Meta)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/{id}", productCtl.Get)
				r.Post("/", productCtl.Create)
				r.Put("/{id}", productCtl.Update)
				r.Delete("/{id}", productCtl.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtl.Create)

			r.Group(func(r chi.Router) {
				r.Use(admin)
				r.Get("/", orderCtl.List)
				r.Get("/{id}", orderCtl.Get)
				r.Patch("/{id}/status", orderCtl.UpdateStatus)
			})
		})
	})

	return r
}
