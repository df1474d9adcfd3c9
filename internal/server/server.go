// Package server exposes the Awair readings on a Prometheus scrape endpoint.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/samwho/awair-prometheus-exporter/internal/config"
	"github.com/samwho/awair-prometheus-exporter/internal/server/middleware"
	"github.com/samwho/awair-prometheus-exporter/model"
)

const shutdownTimeout = 5 * time.Second

// Poller fetches one reading from the device per call.
type Poller interface {
	Latest(ctx context.Context) (*model.AirData, error)
	URL() string
}

// Gauges is the registry the readings are written into.
type Gauges interface {
	Update(d *model.AirData) error
	Handler() http.Handler
}

type Server struct {
	Poller  Poller
	Metrics Gauges
	Config  *config.ExporterConfig
}

func NewServer(poller Poller, gauges Gauges, config *config.ExporterConfig) *Server {
	return &Server{
		Poller:  poller,
		Metrics: gauges,
		Config:  config,
	}
}

// Router returns the HTTP handler serving GET /metrics.
func (srv *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.Config.Logger))
	router.Get("/metrics", srv.MetricsHandler)

	return router
}

// Run listens on the configured port until ctx is canceled.
func (srv *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", srv.Config.Addr())
	if err != nil {
		return err
	}
	return srv.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully.
func (srv *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.Config.Logger.Infof("serving metrics on %s/metrics, polling %s", ln.Addr(), srv.Poller.URL())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Config.Logger.Info("shutting down metrics server")
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// MetricsHandler polls the device once, updates the gauges and renders them
// through the registry handler, which also negotiates format and compression.
// Any poll failure yields 503 with an empty body and leaves the gauges as they were.
func (srv *Server) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	logger := srv.Config.Logger

	data, err := srv.Poller.Latest(r.Context())
	if err != nil {
		logger.Errorf("error during metrics poll [url=%s]: %v", srv.Poller.URL(), err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if err := srv.Metrics.Update(data); err != nil {
		logger.Errorf("failed to update gauges [url=%s]: %v", srv.Poller.URL(), err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if data.Timestamp != nil {
		logger.Debugf("got data from Awair device [timestamp=%s]", *data.Timestamp)
	}

	srv.Metrics.Handler().ServeHTTP(w, r)
}
