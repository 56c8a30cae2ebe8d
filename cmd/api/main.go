package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/auth"
	"github.com/deepakpotluri/jobPortal-Backend/internal/cache"
	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/db"
	httpx "github.com/deepakpotluri/jobPortal-Backend/internal/http"
	"github.com/deepakpotluri/jobPortal-Backend/internal/observability"
	"github.com/deepakpotluri/jobPortal-Backend/internal/storage"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in; without an endpoint the global no-op provider stays
	if cfg.OtelEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), "jobportal-api", cfg.OtelEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("db connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	bootCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := db.Bootstrap(bootCtx, pool); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	if err := db.EnsureAdminUser(bootCtx, pool, cfg); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	files, err := storage.NewResumeStore(cfg.UploadDir)

	if err != nil {
		log.Error("upload dir unavailable", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	jobsCache := cache.New(cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if jobsCache != nil {
		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)

		if err := jobsCache.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, serving uncached", "err", err)
		}
		cancelPing()

		defer jobsCache.Close()
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	router := httpx.NewRouter(log, pool, jobsCache, files, jwtManager, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
