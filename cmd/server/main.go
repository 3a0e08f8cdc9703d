package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/HammerMeetNail/vibenet/internal/config"
	"github.com/HammerMeetNail/vibenet/internal/database"
	"github.com/HammerMeetNail/vibenet/internal/handlers"
	"github.com/HammerMeetNail/vibenet/internal/logging"
	"github.com/HammerMeetNail/vibenet/internal/middleware"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{"env": cfg.Server.Environment})
	}

	logger.Info("Starting VibeNet server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{"addr": cfg.Redis.Addr()})
	redisDB, err := database.NewRedisDB(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(userService, redisAdapter, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	friendService := services.NewFriendService(dbAdapter)
	accessPolicy := services.NewAccessPolicy(friendService)
	postService := services.NewPostService(dbAdapter, accessPolicy)
	commentService := services.NewCommentService(dbAdapter, postService)
	likeService := services.NewLikeService(dbAdapter, postService)
	followService := services.NewFollowService(dbAdapter)

	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService)
	friendHandler := handlers.NewFriendHandler(friendService)
	userHandler := handlers.NewUserHandler(userService, friendService, followService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	likeHandler := handlers.NewLikeHandler(likeService)
	followHandler := handlers.NewFollowHandler(followService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)
	counter := middleware.NewRedisCounter(redisDB.Client)
	authLimiter := middleware.NewAuthRateLimiter(counter, cfg.RateLimit.Auth)
	friendLimiter := middleware.NewFriendRequestRateLimiter(counter, cfg.RateLimit.FriendRequests)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAuth(h)
	}

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/register", authLimiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Friend endpoints
	mux.Handle("POST /api/friends/request/{userId}", authMiddleware.RequireAuth(friendLimiter.Middleware(http.HandlerFunc(friendHandler.SendRequest))))
	mux.Handle("PUT /api/friends/accept/{requestId}", requireAuth(friendHandler.AcceptRequest))
	mux.Handle("PUT /api/friends/decline/{requestId}", requireAuth(friendHandler.DeclineRequest))
	mux.Handle("DELETE /api/friends/request/{requestId}", requireAuth(friendHandler.CancelRequest))
	mux.Handle("DELETE /api/friends/{friendId}", requireAuth(friendHandler.RemoveFriend))
	mux.Handle("GET /api/friends/requests", requireAuth(friendHandler.ListRequests))
	mux.Handle("GET /api/friends/list", requireAuth(friendHandler.ListFriends))
	mux.Handle("GET /api/friends/status/{userId}", requireAuth(friendHandler.Status))

	// User endpoints
	mux.Handle("GET /api/users/search", requireAuth(userHandler.Search))
	mux.Handle("PUT /api/users/me", requireAuth(userHandler.UpdateMe))
	mux.Handle("GET /api/users/{userId}", requireAuth(userHandler.Profile))
	mux.HandleFunc("GET /api/users/{userId}/posts", postHandler.ListByUser)
	mux.Handle("POST /api/users/{userId}/follow", requireAuth(followHandler.Follow))
	mux.Handle("DELETE /api/users/{userId}/follow", requireAuth(followHandler.Unfollow))

	// Post endpoints
	mux.Handle("POST /api/posts", requireAuth(postHandler.Create))
	mux.Handle("GET /api/posts/feed", requireAuth(postHandler.Feed))
	mux.Handle("GET /api/posts/{postId}", requireAuth(postHandler.Get))
	mux.Handle("DELETE /api/posts/{postId}", requireAuth(postHandler.Delete))
	mux.Handle("POST /api/posts/{postId}/like", requireAuth(likeHandler.Like))
	mux.Handle("DELETE /api/posts/{postId}/like", requireAuth(likeHandler.Unlike))
	mux.Handle("GET /api/posts/{postId}/comments", requireAuth(commentHandler.List))
	mux.Handle("POST /api/posts/{postId}/comments", requireAuth(commentHandler.Create))
	mux.Handle("DELETE /api/comments/{commentId}", requireAuth(commentHandler.Delete))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           600,
	})

	// Build middleware chain (order matters: outermost last). The request logger sits
	// inside Authenticate so it can record the caller.
	var handler http.Handler = mux
	handler = requestLogger.Apply(handler)
	handler = authMiddleware.Authenticate(handler)
	handler = securityHeaders.Apply(handler)
	handler = corsHandler.Handler(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{"addr": addr})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
