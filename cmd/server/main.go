package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog_backend/internal/api"
	"blog_backend/internal/app/service"
	"blog_backend/internal/app/worker"
	"blog_backend/internal/common/security"
	"blog_backend/internal/domain/repository"
	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/database"
	"blog_backend/internal/platform/lease"
	"blog_backend/internal/platform/logger"
	"blog_backend/internal/platform/media"
)

func main() {
	// 1. Load Configuration
	cfg, foundDotEnv := config.Load()
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))
	if !foundDotEnv {
		logger.Info("No .env file found, relying on environment variables")
	}
	logger.Info("Configuration loaded.")

	ctx := context.Background()

	// 2. Initialize Database
	db, err := database.Connect(ctx, cfg.DBConnStr)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	defer database.Close(db)
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	// 3. Initialize Redis (optional, only used for the keep-alive lease)
	rdb, err := lease.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Warningf("%v; keep-alive will run without a lease", err)
	}
	defer lease.CloseRedis(rdb)

	// 4. Initialize media storage
	uploader, err := media.New(ctx, cfg)
	if err != nil {
		logger.Errorf("Could not initialize media storage: %v", err)
		os.Exit(1)
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	postRepo := repository.NewPgPostRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	// 6. Initialize Services
	tokens := security.NewTokenIssuer(cfg.JWTKey)
	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, uploader)
	commentService := service.NewCommentService(commentRepo)

	// 7. Keep-alive worker
	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()
	workerDone := make(chan struct{})
	if cfg.SelfURL != "" {
		var keepAliveLease worker.Lease
		if rdb != nil {
			if ttl, err := worker.LeaseTTL(cfg.PingSchedule, time.Now()); err == nil {
				keepAliveLease = lease.NewRedisLease(rdb, "keepalive:lease", ttl)
			}
		}
		keepAlive := worker.NewKeepAliveWorker(cfg.SelfURL, cfg.PingSchedule, keepAliveLease)
		go func() {
			defer close(workerDone)
			if err := keepAlive.Start(workerCtx); err != nil {
				logger.Errorf("Keep-alive worker not started: %v", err)
			}
		}()
	} else {
		close(workerDone)
		logger.Info("SELF_URL not set, keep-alive worker disabled.")
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(tokens, cfg.AllowedOrigin, authService, postService, commentService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
	case err := <-serverErr:
		logger.Errorf("Could not listen on %s: %v", cfg.APIPort, err)
	}

	logger.Info("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	<-workerDone

	logger.Info("Server and worker stopped gracefully.")
}
