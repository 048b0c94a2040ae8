// Package app hosts the activities HTTP service surface and lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/platform/httpx"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/platform/timeouts"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/app/static"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/domain"
	"github.com/Jafie/skills-getting-started-with-github-copilot/internal/services/activities/routepath"
)

// Config defines startup inputs for the activities service.
type Config struct {
	HTTPAddr string
	Service  *domain.Service
}

// Server hosts the activities HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler serving the registration API, the
// embedded front-end assets, and the health probe.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Service == nil {
		return nil, errors.New("activity service is required")
	}
	h := handlers{service: cfg.Service}

	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleRoot)
	mux.HandleFunc(routepath.Root+"{$}", h.methodNotAllowed(http.MethodGet))

	mux.HandleFunc(http.MethodGet+" "+routepath.Activities, h.handleActivityList)
	mux.HandleFunc(routepath.Activities, h.methodNotAllowed(http.MethodGet))

	mux.HandleFunc(http.MethodPost+" "+routepath.ActivitySignupPattern, h.handleSignup)
	mux.HandleFunc(routepath.ActivitySignupPattern, h.methodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodPost+" "+routepath.ActivityUnregisterPattern, h.handleUnregister)
	mux.HandleFunc(routepath.ActivityUnregisterPattern, h.methodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" "+routepath.Health, h.handleHealth)
	mux.HandleFunc(routepath.Health, h.methodNotAllowed(http.MethodGet))

	mux.HandleFunc(http.MethodGet+" "+routepath.StaticIndex, h.handleStaticIndex)
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc(routepath.Root, h.handleNotFound)

	root := httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(log.Default()),
	)
	return otelhttp.NewHandler(root, "activities.http"), nil
}

// NewServer validates config and constructs an activities server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose activities handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("activities server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown activities http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve activities http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
