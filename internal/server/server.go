package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/handlers"
	"backoffice/internal/middlewares"
	"backoffice/internal/repositories"
	"backoffice/internal/routes"
	"backoffice/internal/services"
	"backoffice/internal/store"
)

// NewServer connects the store backend and Redis, then wires the HTTP API.
// The returned cleanup releases both connections.
func NewServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*http.Server, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	closers = append(closers, func() { _ = rdb.Close() })

	// Fail fast with a clear message
	{
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info("connected to Redis successfully")
	}

	router := NewRouter(cfg, log, st, repositories.NewRedisRepository(rdb))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv, cleanup, nil
}

// NewRouter wires repositories, services and handlers over st.
func NewRouter(cfg *config.Config, log logrus.FieldLogger, st store.Store, blacklist services.TokenBlacklist) *gin.Engine {
	restaurantRepo := repositories.NewRestaurantRepository(st)
	categoryRepo := repositories.NewCategoryRepository(st)
	inventoryRepo := repositories.NewInventoryRepository(st)
	tableRepo := repositories.NewTableRepository(st)

	authService := services.NewAuthService(restaurantRepo, tableRepo, blacklist, cfg.AccessTokenSecret)

	workspace := &handlers.Workspace{
		Restaurants: restaurantRepo,
		Categories:  categoryRepo,
		Inventory:   inventoryRepo,
		Tables:      tableRepo,
		QRBaseURL:   cfg.QRBaseURL,
	}

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, authService, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Inventory: handlers.NewInventoryHandler(workspace),
		Tables:    handlers.NewTableHandler(workspace),
		Profile:   handlers.NewProfileHandler(workspace),
	})

	return router
}

func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if err := database.Migrate(ctx, cfg.DB, log); err != nil {
			return nil, nil, err
		}
		pool, err := database.Connect(ctx, cfg.DB, log)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPGStore(pool), pool.Close, nil

	default:
		client := &http.Client{Timeout: cfg.StoreTimeout}
		log.WithField("url", cfg.SupabaseURL).Info("using REST row store")
		return store.NewRESTStore(cfg.SupabaseURL, cfg.SupabaseKey, client, log), func() {}, nil
	}
}
