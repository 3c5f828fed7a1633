package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/novinbook/bookstore-backend/api/controllers"
	"github.com/novinbook/bookstore-backend/api/routes"
	"github.com/novinbook/bookstore-backend/internal/auth"
	"github.com/novinbook/bookstore-backend/internal/books"
	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/internal/favorites"
	"github.com/novinbook/bookstore-backend/internal/users"
	"github.com/novinbook/bookstore-backend/pkg/auth/session"
	"github.com/novinbook/bookstore-backend/pkg/config"
	"github.com/novinbook/bookstore-backend/pkg/db"
	"github.com/novinbook/bookstore-backend/pkg/logger"
	"github.com/novinbook/bookstore-backend/pkg/metrics"
	"github.com/novinbook/bookstore-backend/pkg/migrate"
	"github.com/novinbook/bookstore-backend/pkg/redis"
	"github.com/novinbook/bookstore-backend/pkg/storage"
)

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
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	objectStore, err := storage.New(cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	filterMemory, err := catalog.NewFilterMemory(redisClient, cfg.Filters)
	if err != nil {
		logg.Error(context.Background(), "failed to create filter memory", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo: userRepo,
		Sessions: sessionManager,
		JWT:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:       dbClient,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	bookService, err := books.NewService(books.ServiceParams{
		DB:      dbClient,
		Filters: filterMemory,
		Covers:  objectStore,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create book service", err)
		os.Exit(1)
	}

	favoriteService, err := favorites.NewService(favorites.ServiceParams{DB: dbClient, Covers: objectStore})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			Metrics:         httpMetrics,
			Sessions:        sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			UserRepo:        userRepo,
			BookService:     bookService,
			FavoriteService: favoriteService,
			FilterMemory:    filterMemory,
			ObjectStore:     objectStore,
			ReadinessDeps: map[string]controllers.Pinger{
				"database": dbClient,
				"redis":    redisClient,
				"storage":  objectStore,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
