package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marcheplus/marcheplus-backend/api/controllers"
	"github.com/marcheplus/marcheplus-backend/api/middleware"
	"github.com/marcheplus/marcheplus-backend/internal/admin"
	"github.com/marcheplus/marcheplus-backend/internal/auth"
	"github.com/marcheplus/marcheplus-backend/internal/categories"
	"github.com/marcheplus/marcheplus-backend/internal/favorites"
	"github.com/marcheplus/marcheplus-backend/internal/market"
	"github.com/marcheplus/marcheplus-backend/internal/notifications"
	product "github.com/marcheplus/marcheplus-backend/internal/products"
	"github.com/marcheplus/marcheplus-backend/internal/requests"
	"github.com/marcheplus/marcheplus-backend/pkg/auth/session"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/enums"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/metrics"
	pkgredis "github.com/marcheplus/marcheplus-backend/pkg/redis"
)

type rateCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// redisStore is the redis surface used by the rate limiter and idempotency middleware.
type redisStore interface {
	pkgredis.IdempotencyStore
	rateCounter
}

// Services bundles the domain services mounted by the router.
type Services struct {
	Auth          auth.Service
	Requests      requests.Service
	Products      product.Service
	Market        market.Service
	Categories    categories.Service
	Notifications notifications.Service
	Favorites     favorites.Service
	Admin         admin.Service
}

// Infra bundles the cross-cutting collaborators.
type Infra struct {
	Sessions    session.AccessSessionChecker
	Redis       redisStore
	Translator  *i18n.Translator
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Readiness   map[string]controllers.Pinger
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Locale(infra.Translator),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginPhoneLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterPhoneLimit,
	)

	var (
		limiter          rateCounter
		idempotencyStore pkgredis.IdempotencyStore
	)
	if infra.Redis != nil {
		limiter = infra.Redis
		idempotencyStore = infra.Redis
	}
	idempotency := middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg)

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, infra.Readiness))
	if infra.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(infra.Gatherer))
	}

	// public catalog and market reads
	r.Group(func(r chi.Router) {
		r.Get("/api/v1/categories", controllers.ListCategories(svc.Categories, logg))
		r.Get("/api/v1/products", controllers.ListProducts(svc.Products, logg))
		r.Get("/api/v1/products/{productId}", controllers.GetProductDetail(svc.Market, logg))
		r.Get("/api/v1/products/{productId}/alternatives", controllers.ListProductAlternatives(svc.Market, logg))
		r.Get("/api/v1/products/{productId}/supplier-products", controllers.ListSupplierOtherProducts(svc.Market, logg))
		r.Get("/api/v1/market/stats", controllers.MarketStats(svc.Market, logg))
		r.Get("/api/v1/market/summaries", controllers.MarketSummaries(svc.Market, logg))
	})

	r.Group(func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).
			Post("/api/v1/auth/login", controllers.AuthLogin(svc.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg), idempotency).
			Post("/api/v1/auth/register", controllers.AuthRegister(svc.Auth, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, infra.Sessions, logg))
		r.Use(idempotency)

		r.Post("/api/v1/auth/logout", controllers.AuthLogout(svc.Auth, logg))
		r.Get("/api/v1/auth/me", controllers.AuthMe(svc.Auth, logg))

		r.Get("/api/v1/requests", controllers.ListPurchaseRequests(svc.Requests, logg))
		r.With(middleware.RequireRole(logg, enums.RoleMerchant)).
			Post("/api/v1/requests", controllers.CreatePurchaseRequest(svc.Requests, logg))
		r.With(middleware.RequireRole(logg, enums.RoleMerchant, enums.RoleSupplier)).
			Put("/api/v1/requests/{requestId}", controllers.UpdatePurchaseRequestStatus(svc.Requests, logg))

		r.With(middleware.RequireRole(logg, enums.RoleSupplier)).
			Get("/api/v1/products/mine", controllers.ListMyProducts(svc.Products, logg))
		r.With(middleware.RequireRole(logg, enums.RoleSupplier)).
			Post("/api/v1/products", controllers.CreateProduct(svc.Products, logg))

		r.Get("/api/v1/notifications", controllers.ListNotifications(svc.Notifications, logg))
		r.Post("/api/v1/notifications/read-all", controllers.MarkAllNotificationsRead(svc.Notifications, logg))
		r.Post("/api/v1/notifications/{notificationId}/read", controllers.MarkNotificationRead(svc.Notifications, logg))

		r.Get("/api/v1/favorites", controllers.ListFavorites(svc.Favorites, logg))
		r.Post("/api/v1/favorites", controllers.AddFavorite(svc.Favorites, logg))
		r.Delete("/api/v1/favorites", controllers.RemoveFavorite(svc.Favorites, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, infra.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))

		r.Get("/api/admin/v1/stats", controllers.AdminDashboard(svc.Admin, logg))
		r.Get("/api/admin/v1/users", controllers.AdminListUsers(svc.Admin, logg))
	})

	return r
}
