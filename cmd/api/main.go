package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/marcheplus/marcheplus-backend/api/controllers"
	"github.com/marcheplus/marcheplus-backend/api/routes"
	"github.com/marcheplus/marcheplus-backend/internal/admin"
	"github.com/marcheplus/marcheplus-backend/internal/auth"
	"github.com/marcheplus/marcheplus-backend/internal/categories"
	"github.com/marcheplus/marcheplus-backend/internal/favorites"
	"github.com/marcheplus/marcheplus-backend/internal/market"
	"github.com/marcheplus/marcheplus-backend/internal/notifications"
	product "github.com/marcheplus/marcheplus-backend/internal/products"
	"github.com/marcheplus/marcheplus-backend/internal/requests"
	"github.com/marcheplus/marcheplus-backend/internal/users"
	"github.com/marcheplus/marcheplus-backend/pkg/auth/session"
	"github.com/marcheplus/marcheplus-backend/pkg/config"
	"github.com/marcheplus/marcheplus-backend/pkg/db"
	"github.com/marcheplus/marcheplus-backend/pkg/i18n"
	"github.com/marcheplus/marcheplus-backend/pkg/logger"
	"github.com/marcheplus/marcheplus-backend/pkg/metrics"
	"github.com/marcheplus/marcheplus-backend/pkg/migrate"
	"github.com/marcheplus/marcheplus-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Environment: cfg.App.Env,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	requestMetrics := metrics.NewRequestMetrics(registry)

	translator := i18n.New(cfg.App.DefaultLocale)
	gdb := dbClient.DB()

	userRepo := users.NewRepository(gdb)
	productRepo := product.NewRepository(gdb)
	notificationRepo := notifications.NewRepository(gdb)

	services, err := buildServices(cfg, logg, translator, requestMetrics, redisClient, sessionManager, serviceRepos{
		users:         userRepo,
		products:      productRepo,
		notifications: notificationRepo,
		db:            dbClient,
	})
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithField(ctx, "addr", addr)
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Infra{
			Sessions:    sessionManager,
			Redis:       redisClient,
			Translator:  translator,
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
			Readiness: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
			},
		}, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(logCtx, "error during shutdown", closeErr)
		exitCode = 1
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

type serviceRepos struct {
	users         *users.Repository
	products      *product.Repository
	notifications notifications.Repository
	db            *db.Client
}

func buildServices(
	cfg *config.Config,
	logg *logger.Logger,
	translator *i18n.Translator,
	requestMetrics *metrics.RequestMetrics,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	repos serviceRepos,
) (routes.Services, error) {
	gdb := repos.db.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       repos.users,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	categoryService, err := categories.NewService(categories.NewRepository(gdb))
	if err != nil {
		return routes.Services{}, err
	}

	marketService, err := market.NewService(market.NewRepository(gdb), repos.products, market.Options{
		Cache:    redisClient,
		CacheTTL: cfg.Market.StatsCacheTTL,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	productService, err := product.NewService(repos.products, categoryService, product.Options{Stats: marketService})
	if err != nil {
		return routes.Services{}, err
	}

	dispatcher := notifications.NewDispatcher(repos.notifications, logg, requestMetrics)
	requestService, err := requests.NewService(requests.NewRepository(gdb), repos.products, dispatcher, requests.Options{
		Translator:         translator,
		Metrics:            requestMetrics,
		Logger:             logg,
		NotifyOnTransition: cfg.FeatureFlags.NotifyOnTransition,
	})
	if err != nil {
		return routes.Services{}, err
	}

	notificationService, err := notifications.NewService(repos.notifications)
	if err != nil {
		return routes.Services{}, err
	}

	favoriteService, err := favorites.NewService(favorites.NewRepository(gdb), repos.products)
	if err != nil {
		return routes.Services{}, err
	}

	adminService, err := admin.NewService(admin.NewRepository(gdb), repos.users)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:          authService,
		Requests:      requestService,
		Products:      productService,
		Market:        marketService,
		Categories:    categoryService,
		Notifications: notificationService,
		Favorites:     favoriteService,
		Admin:         adminService,
	}, nil
}
