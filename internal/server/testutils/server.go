package testutils

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/samwho/awair-prometheus-exporter/internal/client"
	"github.com/samwho/awair-prometheus-exporter/internal/config"
	"github.com/samwho/awair-prometheus-exporter/internal/metrics"
	"github.com/samwho/awair-prometheus-exporter/internal/server"
)

// NewTestServer wires a server with a fresh registry to the device at target.
func NewTestServer(target string, logger *zap.SugaredLogger) (*server.Server, *metrics.Registry) {
	u, err := url.Parse(target)
	if err != nil {
		panic(err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	cfg := &config.ExporterConfig{
		Target:      u,
		MetricsPort: 8888,
		LogLevel:    "debug",
		Logger:      logger,
	}
	reg := metrics.NewRegistry()
	return server.NewServer(client.NewClient(cfg), reg, cfg), reg
}
