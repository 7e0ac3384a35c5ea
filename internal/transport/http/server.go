package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediahub/internal/cache"
	"mediahub/internal/config"
	"mediahub/internal/database"
	"mediahub/internal/handler"
	"mediahub/internal/queue"
	"mediahub/internal/redis"
	"mediahub/internal/repository"
	"mediahub/internal/service"
	"mediahub/internal/worker"
)

// Run wires the whole application and serves HTTP until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	watchLaterRepo := repository.NewWatchLaterRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Expired refresh tokens are garbage collected in the background;
	// revoked rows are kept for the retention window so reuse detection
	// still sees them.
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := refreshTokenRepo.DeleteExpired(ctx, 30*24*time.Hour)
			if err != nil {
				log.Printf("[Server] Refresh token cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[Server] Deleted %d expired refresh tokens", n)
			}
		}
	}()

	// Redis-backed infrastructure
	statsCache := cache.NewStatsCache(redisClient.Client)
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)

	// Services
	userService := service.NewUserService(userRepo, cfg)
	authService := service.NewAuthService(refreshTokenRepo, userRepo, cfg)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	watchLaterService := service.NewWatchLaterService(watchLaterRepo)
	historyService := service.NewWatchHistoryService(historyRepo)
	ratingService := service.NewRatingService(ratingRepo, statsCache, publisher)
	commentService := service.NewCommentService(commentRepo)

	// Avatar uploads are optional; the rest of the API works without
	// object storage configured.
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		log.Printf("[Server] Object storage disabled: %v", err)
		mediaService = nil
	}

	// Rating workers re-warm the stats cache after writes.
	workerHandler := worker.NewHandler(statsCache, ratingRepo)
	workerManager := worker.NewManager(consumer, workerHandler, worker.DefaultManagerConfig())
	if err := workerManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer workerManager.Stop()

	// Handlers
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		UserHandler:         handler.NewUserHandler(userService, mediaService),
		FavoriteHandler:     handler.NewFavoriteHandler(favoriteService),
		WatchLaterHandler:   handler.NewWatchLaterHandler(watchLaterService),
		WatchHistoryHandler: handler.NewWatchHistoryHandler(historyService),
		RatingHandler:       handler.NewRatingHandler(ratingService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		JWTSecret:           cfg.JWTSecret,
	})

	server := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Printf("[Server] Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("[Server] Shutdown complete")
	return nil
}
