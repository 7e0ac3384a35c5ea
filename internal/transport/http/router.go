package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mediahub/internal/handler"
	"mediahub/internal/httputil"
	authmw "mediahub/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	FavoriteHandler     *handler.FavoriteHandler
	WatchLaterHandler   *handler.WatchLaterHandler
	WatchHistoryHandler *handler.WatchHistoryHandler
	RatingHandler       *handler.RatingHandler
	CommentHandler      *handler.CommentHandler
	JWTSecret           string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	// Public profile lookup
	r.Get("/users/{id}", cfg.UserHandler.GetByID)

	// Public rating aggregate
	r.Get("/ratings/content", cfg.RatingHandler.GetContentStats)

	// Public comment listings and likes
	r.Get("/comments", cfg.CommentHandler.List)
	r.Get("/comments/replies/{parentId}", cfg.CommentHandler.ListReplies)
	r.Post("/comments/{id}/like", cfg.CommentHandler.Like)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/auth/logout-all", cfg.AuthHandler.LogoutAll)

		// Current user endpoints
		r.Get("/me", cfg.UserHandler.Me)
		r.Patch("/me", cfg.UserHandler.UpdateProfile)
		r.Post("/me/avatar", cfg.UserHandler.UploadAvatar)

		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", cfg.FavoriteHandler.Add)
			r.Get("/", cfg.FavoriteHandler.List)
			r.Get("/check/{contentId}", cfg.FavoriteHandler.Check)
			r.Delete("/{contentId}", cfg.FavoriteHandler.Remove)
			r.Delete("/", cfg.FavoriteHandler.Clear)
		})

		r.Route("/watch-later", func(r chi.Router) {
			r.Post("/", cfg.WatchLaterHandler.Add)
			r.Get("/", cfg.WatchLaterHandler.List)
			r.Get("/check/{contentId}", cfg.WatchLaterHandler.Check)
			r.Delete("/{contentId}", cfg.WatchLaterHandler.Remove)
			r.Delete("/", cfg.WatchLaterHandler.Clear)
		})

		r.Route("/watch-history", func(r chi.Router) {
			r.Post("/", cfg.WatchHistoryHandler.Upsert)
			r.Get("/", cfg.WatchHistoryHandler.List)
			r.Get("/{contentId}", cfg.WatchHistoryHandler.Get)
			r.Put("/{contentId}", cfg.WatchHistoryHandler.Update)
			r.Delete("/{contentId}", cfg.WatchHistoryHandler.Remove)
			r.Delete("/", cfg.WatchHistoryHandler.Clear)
		})

		r.Post("/ratings", cfg.RatingHandler.Rate)
		r.Get("/ratings/user", cfg.RatingHandler.GetUserRating)
		r.Delete("/ratings", cfg.RatingHandler.Remove)

		r.Post("/comments", cfg.CommentHandler.Create)
		r.Put("/comments/{id}", cfg.CommentHandler.Update)
		r.Delete("/comments/{id}", cfg.CommentHandler.Delete)
	})

	return r
}
