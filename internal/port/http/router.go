package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/plantnet/server/internal/auth"
	"github.com/plantnet/server/internal/domain/entity"
	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/platform/metrics"
	"github.com/plantnet/server/internal/port/http/handler"
	"github.com/plantnet/server/internal/port/http/middleware"
	"github.com/plantnet/server/internal/repository"
)

type RouterDeps struct {
	Codec   *auth.TokenCodec
	Users   repository.UserRepository
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Plant   *handler.PlantHandler
	Order   *handler.OrderHandler
	Limiter middleware.RequestLimiter // nil disables rate limiting
	Origins []string
	Log     logger.Logger
}

// NewRouter wires the full route table. Guards compose per route group:
// authentication first, then role, then identity match; the first failing
// guard terminates the request.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(deps.Origins))
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(metrics.Middleware)
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter, deps.Log))
	}

	requireAuth := middleware.RequireAuth(deps.Codec, deps.Log)
	requireSeller := middleware.RequireRole(deps.Users, entity.RoleSeller, deps.Log)
	requireAdmin := middleware.RequireRole(deps.Users, entity.RoleAdmin, deps.Log)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Hello from plantNet Server.."))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Session
	r.Post("/jwt", deps.Auth.IssueToken)
	r.Get("/logout", deps.Auth.Logout)

	// Users
	r.Get("/users/role/{email}", deps.User.GetRole)
	r.Post("/users/{email}", deps.User.SignUp)
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, middleware.RequireEmailMatch)
		g.Patch("/users/{email}", deps.User.RequestVerification)
	})
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, requireAdmin)
		g.Get("/all-users/{email}", deps.User.ListAll)
		g.Patch("/user/role/{email}", deps.User.SetRole)
	})

	// Plants
	r.Get("/plants", deps.Plant.ListAll)
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, requireSeller)
		g.Post("/plants", deps.Plant.Create)
		g.Get("/plants/seller", deps.Plant.Inventory)
		g.Post("/plants/image", deps.Plant.UploadImage)
		g.Put("/plants/{id}", deps.Plant.Update)
		g.Delete("/plants/{id}", deps.Plant.Delete)
	})
	r.Group(func(g chi.Router) {
		g.Use(requireAuth)
		g.Patch("/plants/quantity", deps.Plant.AdjustQuantity)
	})
	r.Get("/plants/{id}", deps.Plant.GetByID)

	// Orders. The {id} segments carry a regex so a 24-char hex ObjectID and
	// an email can share the position without a wildcard conflict.
	r.Group(func(g chi.Router) {
		g.Use(requireAuth)
		g.Post("/orders", deps.Order.Checkout)
		g.Delete("/orders/{id:[0-9a-fA-F]{24}}", deps.Order.CancelByCustomer)
	})
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, middleware.RequireEmailMatch)
		g.Get("/orders/{email}", deps.Order.ListForCustomer)
	})
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, requireSeller)
		g.Patch("/orders/seller/{id:[0-9a-fA-F]{24}}", deps.Order.UpdateStatus)
		g.Delete("/orders/seller/{id:[0-9a-fA-F]{24}}", deps.Order.CancelBySeller)
	})
	r.Group(func(g chi.Router) {
		g.Use(requireAuth, requireSeller, middleware.RequireEmailMatch)
		g.Get("/orders/seller/{email}", deps.Order.ListForSeller)
	})

	return r
}
