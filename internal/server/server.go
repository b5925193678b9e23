// Package server exposes the builder's HTTP surface: the live
// configuration endpoint polled by preview devices, the template
// save/load endpoint used by the visual editor, and the operational
// endpoints (health, metrics, builder notifications).
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/appcanvas-dev/appcanvas/internal/config"
	"github.com/appcanvas-dev/appcanvas/internal/liveconfig"
	"github.com/appcanvas-dev/appcanvas/internal/registry"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
)

// Server ties the HTTP surface to the builder's collaborators.
type Server struct {
	cfg       *config.Config
	assembler *liveconfig.Assembler
	gateway   *storage.Gateway
	reg       *registry.Registry
	notify    *NotifyHub
	log       *logrus.Logger

	httpServer *http.Server
}

// New creates a Server. The notification hub is started lazily on the
// first /ws/builder upgrade.
func New(cfg *config.Config, assembler *liveconfig.Assembler, gateway *storage.Gateway, reg *registry.Registry, log *logrus.Logger) *Server {
	return &Server{
		cfg:       cfg,
		assembler: assembler,
		gateway:   gateway,
		reg:       reg,
		notify:    NewNotifyHub(),
		log:       log,
	}
}

// Handler builds the router. Exposed separately from Run so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(s.log))
	r.Use(Metrics())
	r.Use(Tracing())

	r.Get("/healthz", s.handleHealthz)
	if s.cfg.Server.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/api/config/{appKey}", s.handleConfig)
	r.Post("/api/templates", s.handleTemplates)
	r.Get("/ws/builder", s.notify.HandleWebSocket)

	return r
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.notify.Close()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
