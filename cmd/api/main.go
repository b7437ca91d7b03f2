package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"blog-showcase/cmd/api/metrics"
	"blog-showcase/cmd/api/router"
	"blog-showcase/cmd/internal/logger"
	"blog-showcase/config"
)

// @title           Blog Showcase API
// @version         1.0
// @description     Enriched blog posts for the showcase front-end
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	// LOG_LEVEL 환경변수가 config.yaml 의 logging.level 보다 우선한다.
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	app, err := buildApp(cfg, m)
	if err != nil {
		logger.Log.Errorf("failed to build api: %v", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.New(app.Deps(cfg)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting api server", logger.Fields{
			"addr":     cfg.Server.Addr,
			"upstream": cfg.Upstream.BaseURL,
			"cache":    cfg.Cache.Backend,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("api server error: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down api server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
	logger.Log.Info("api server stopped")
}
