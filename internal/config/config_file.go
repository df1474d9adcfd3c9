package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Target      *string `json:"target" yaml:"target"`
	MetricsPort *int    `json:"metrics_port" yaml:"metrics_port"`
	PollTimeout *string `json:"poll_timeout" yaml:"poll_timeout"` // "5s"
	LogLevel    *string `json:"log_level" yaml:"log_level"`
}

// loadFile reads a YAML file when path ends in .yaml or .yml and JSON otherwise.
func loadFile(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = json.Unmarshal(b, &fc)
	}
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

func (fc *fileConfig) apply(raw *rawConfig) error {
	if fc.Target != nil {
		raw.target = *fc.Target
	}
	if fc.MetricsPort != nil {
		raw.metricsPort = *fc.MetricsPort
	}
	if fc.PollTimeout != nil {
		d, err := time.ParseDuration(*fc.PollTimeout)
		if err != nil {
			return fmt.Errorf("poll_timeout: %w", err)
		}
		raw.pollTimeout = d
	}
	if fc.LogLevel != nil {
		raw.logLevel = *fc.LogLevel
	}
	return nil
}
