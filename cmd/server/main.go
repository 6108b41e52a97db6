package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	accounthttp "github.com/greenmart/storefront/internal/account/delivery/http"
	accountrepo "github.com/greenmart/storefront/internal/account/repository"
	carthttp "github.com/greenmart/storefront/internal/cart/delivery/http"
	cartrepo "github.com/greenmart/storefront/internal/cart/repository"
	cataloghttp "github.com/greenmart/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/greenmart/storefront/internal/catalog/repository"
	checkouthttp "github.com/greenmart/storefront/internal/checkout/delivery/http"
	"github.com/greenmart/storefront/internal/storefront"
	wishlisthttp "github.com/greenmart/storefront/internal/wishlist/delivery/http"
	wishlistrepo "github.com/greenmart/storefront/internal/wishlist/repository"
	"github.com/greenmart/storefront/pkg/config"
	"github.com/greenmart/storefront/pkg/database"
	"github.com/greenmart/storefront/pkg/logger"
	"github.com/greenmart/storefront/pkg/session"
	"github.com/greenmart/storefront/pkg/tracing"
)

const serviceName = "storefront"

func main() {
	cfg := config.Load()
	logger.Init(serviceName, cfg.IsDevelopment())
	ctx := context.Background()

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("failed to shut down tracer")
		}
	}()

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to get database instance")
	}
	defer sqlDB.Close()

	// Migrations: catalog first so the cart and wishlist FKs have their
	// target tables.
	migrators := []interface{ AutoMigrate() error }{
		catalogrepo.NewGormCatalogRepository(db),
		accountrepo.NewGormUserRepository(db),
		cartrepo.NewGormCartRepository(db),
		wishlistrepo.NewGormWishlistRepository(db),
	}
	for _, m := range migrators {
		if err := m.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	sessions := session.NewManager(newSessionStore(ctx, cfg), []byte(cfg.SessionSecret), cfg.SessionTTL)

	userRepo := storefront.ProvideUserRepository(db)
	catalogRepo := storefront.ProvideCatalogRepository(db)
	cartRepo := storefront.ProvideCartRepository(db)
	wishlistRepo := storefront.ProvideWishlistRepository(db)

	handlers := storefront.ProvideHandlers(
		accounthttp.NewAccountHandler(userRepo, catalogRepo, sessions),
		cataloghttp.NewCatalogHandler(catalogRepo),
		carthttp.NewCartHandler(cartRepo, catalogRepo, sessions),
		wishlisthttp.NewWishlistHandler(wishlistRepo, catalogRepo, sessions),
		checkouthttp.NewCheckoutHandler(cartRepo, sessions),
	)

	router := mux.NewRouter()
	handlers.Catalog.RegisterRoutes(router)
	handlers.Cart.RegisterRoutes(router)
	handlers.Wishlist.RegisterRoutes(router)
	handlers.Checkout.RegisterRoutes(router)
	handlers.Account.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", healthCheck(sqlDB)).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: otelhttp.NewHandler(c.Handler(router), serviceName),
	}

	go func() {
		logger.Logger.Info().Str("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("forced shutdown")
	}
}

// newSessionStore prefers Redis when configured and falls back to the
// in-process store for single-node development.
func newSessionStore(ctx context.Context, cfg config.Config) session.Store {
	if cfg.RedisAddr == "" {
		logger.Logger.Warn().Msg("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	return session.NewRedisStore(client, cfg.SessionTTL)
}

func healthCheck(db interface{ PingContext(context.Context) error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy", "error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}
}
