// ABOUTME: HTTP server for the CRM REST API and read-only pages
// ABOUTME: Builds the gin engine, wires middleware, and runs with graceful shutdown
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/salescrm/ai"
	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"go.uber.org/zap"
)

const defaultSlowRequest = 200 * time.Millisecond

// Options tune the HTTP layer.
type Options struct {
	// CORSOrigins lists allowed origins; empty or "*" allows all.
	CORSOrigins []string
	// SlowRequest is the latency above which requests are logged at warn.
	SlowRequest time.Duration
}

type Server struct {
	store     *db.Store
	analytics *analytics.Service
	assistant *ai.Assistant
	logger    *zap.Logger
	pages     map[string]*template.Template
	engine    *gin.Engine
}

func NewServer(store *db.Store, assistant *ai.Assistant, logger *zap.Logger, opts Options) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assistant == nil {
		assistant = ai.NewAssistant(store, nil, logger)
	}
	if opts.SlowRequest <= 0 {
		opts.SlowRequest = defaultSlowRequest
	}
	for _, origin := range opts.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q: must be * or start with http:// or https://", origin)
		}
	}

	pages, err := loadPages()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		store:     store,
		analytics: analytics.NewService(store),
		assistant: assistant,
		logger:    logger,
		pages:     pages,
		engine:    engine,
	}

	engine.Use(
		recovery(logger),
		requestID(),
		accessLog(logger, opts.SlowRequest),
		corsMiddleware(opts.CORSOrigins),
	)
	s.registerRoutes()

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down web server", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func allowsAllOrigins(origins []string) bool {
	return len(origins) == 0 || slices.Contains(origins, "*")
}
