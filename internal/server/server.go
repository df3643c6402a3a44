// Package server wires the gin engine and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/feedback-service/internal/config"
	"github.com/maxviazov/feedback-service/internal/handler"
	"github.com/maxviazov/feedback-service/internal/service"
)

// HTTPServer wraps the gin engine with graceful shutdown helpers.
type HTTPServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the engine with the middleware chain and all public routes.
func New(cfg *config.Config, log zerolog.Logger, pinger handler.Pinger, feedbackSvc service.FeedbackService) (*HTTPServer, error) {
	switch cfg.App.Env {
	case "prod", "staging":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	engine := gin.New()
	// nil disables proxy trust altogether
	var proxies []string
	if len(cfg.HTTP.TrustedProxies) > 0 {
		proxies = cfg.HTTP.TrustedProxies
	}
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	engine.Use(handler.Middleware(log, cfg.HTTP.CORSAllowedOrigins)...)
	handler.Register(engine, pinger, feedbackSvc, handler.Options{DefaultPerPage: cfg.Pagination.DefaultPerPage})

	return &HTTPServer{cfg: cfg, engine: engine, log: log}, nil
}

// Handler exposes the engine, mainly for tests.
func (s *HTTPServer) Handler() http.Handler { return s.engine }

// Run starts the listener and blocks until ctx is cancelled or the listener fails.
// On cancellation in-flight requests get up to app.shutdown_timeout to finish.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
