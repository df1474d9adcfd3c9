package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/samwho/awair-prometheus-exporter/internal/buildinfo"
	"github.com/samwho/awair-prometheus-exporter/internal/client"
	"github.com/samwho/awair-prometheus-exporter/internal/config"
	"github.com/samwho/awair-prometheus-exporter/internal/metrics"
	"github.com/samwho/awair-prometheus-exporter/internal/server"
)

func main() {
	buildinfo.PrintBuildInfo(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := config.NewExporterConfig()
	if err != nil {
		zap.Must(zap.NewProduction()).Sugar().Fatalf("invalid configuration: %v", err)
	}
	defer func() { _ = config.Logger.Sync() }()

	config.Logger.Infof("Exporter config: Target=%s, MetricsPort=%d, PollTimeout=%s, LogLevel=%s",
		config.Target,
		config.MetricsPort,
		config.PollTimeout,
		config.LogLevel,
	)

	srv := server.NewServer(client.NewClient(config), metrics.NewRegistry(), config)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
