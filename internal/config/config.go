// Package config provides application configuration structures and helpers.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrMissingTarget = errors.New("target is required")
	ErrInvalidTarget = errors.New("invalid target url")
	ErrInvalidPort   = errors.New("invalid metrics port")
)

// ExporterConfig holds the configuration settings for the exporter.
// It is built once at startup and never modified afterwards.
type ExporterConfig struct {
	Target      *url.URL      // Base URL of the Awair device
	MetricsPort int           // Port the metrics endpoint listens on
	PollTimeout time.Duration // Upper bound for one device poll, 0 means no limit
	LogLevel    string        // zap level name
	Logger      *zap.SugaredLogger
}

// Addr returns the listen address of the metrics endpoint.
func (cfg *ExporterConfig) Addr() string {
	return ":" + strconv.Itoa(cfg.MetricsPort)
}

// NewExporterConfig creates and returns a new ExporterConfig by parsing
// command line flags, the optional config file and environment variables.
func NewExporterConfig() (*ExporterConfig, error) {
	return load(flag.CommandLine, os.Args[1:])
}

type rawConfig struct {
	target      string
	metricsPort int
	pollTimeout time.Duration
	logLevel    string
}

func load(fs *flag.FlagSet, args []string) (*ExporterConfig, error) {
	// 0) defaults
	raw := rawConfig{
		metricsPort: 8888,
		logLevel:    "info",
	}

	// 1) flags
	var fTarget, fLevel, fConf strFlag
	var fPort intFlag
	var fTimeout durationFlag

	fs.Var(&fTarget, "target", "base URL of the Awair device (required)")
	fs.Var(&fPort, "metrics-port", "port to serve /metrics on (default 8888)")
	fs.Var(&fTimeout, "poll-timeout", "timeout for one device poll, e.g. 5s (default none)")
	fs.Var(&fLevel, "log-level", "log level: debug, info, warn, error (default info)")
	fs.Var(&fConf, "c", "Path to JSON or YAML config file")
	fs.Var(&fConf, "config", "Path to JSON or YAML config file (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// 2) config file (lowest priority after defaults)
	if !fConf.set {
		if v := os.Getenv("CONFIG"); v != "" {
			fConf.v = v
		}
	}
	if fConf.v != "" {
		fc, err := loadFile(fConf.v)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", fConf.v, err)
		}
		if err := fc.apply(&raw); err != nil {
			return nil, fmt.Errorf("config file %s: %w", fConf.v, err)
		}
	}

	if fTarget.set {
		raw.target = fTarget.v
	}
	if fPort.set {
		raw.metricsPort = fPort.v
	}
	if fTimeout.set {
		raw.pollTimeout = fTimeout.v
	}
	if fLevel.set {
		raw.logLevel = fLevel.v
	}

	// 3) environment (highest priority)
	if err := readEnvironment(&raw); err != nil {
		return nil, err
	}

	return build(raw)
}

func readEnvironment(raw *rawConfig) error {
	if target := os.Getenv("TARGET"); target != "" {
		raw.target = target
	}

	if portEnv := os.Getenv("METRICS_PORT"); portEnv != "" {
		v, err := strconv.Atoi(portEnv)
		if err != nil {
			return fmt.Errorf("invalid METRICS_PORT env var: %w", err)
		}
		raw.metricsPort = v
	}

	if timeoutEnv := os.Getenv("POLL_TIMEOUT"); timeoutEnv != "" {
		v, err := time.ParseDuration(timeoutEnv)
		if err != nil {
			return fmt.Errorf("invalid POLL_TIMEOUT env var: %w", err)
		}
		raw.pollTimeout = v
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		raw.logLevel = level
	}
	return nil
}

func build(raw rawConfig) (*ExporterConfig, error) {
	target, err := parseTarget(raw.target)
	if err != nil {
		return nil, err
	}

	if raw.metricsPort < 1 || raw.metricsPort > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, raw.metricsPort)
	}

	if raw.pollTimeout < 0 {
		return nil, fmt.Errorf("poll timeout must not be negative: %s", raw.pollTimeout)
	}

	logger, err := newLogger(raw.logLevel)
	if err != nil {
		return nil, err
	}

	return &ExporterConfig{
		Target:      target,
		MetricsPort: raw.metricsPort,
		PollTimeout: raw.pollTimeout,
		LogLevel:    raw.logLevel,
		Logger:      logger,
	}, nil
}

func parseTarget(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingTarget
	}

	// normalize address
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	return u, nil
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = lvl
	logCfg.OutputPaths = []string{"stdout"}

	logger, err := logCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}
