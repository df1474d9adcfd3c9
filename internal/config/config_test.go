package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setEnvAndRun(t *testing.T, env map[string]string, fn func()) {
	t.Helper()

	backup := map[string]string{}
	for k := range env {
		backup[k] = os.Getenv(k)
	}

	for k, v := range env {
		require.NoError(t, os.Setenv(k, v))
	}
	defer func() {
		for k := range env {
			_ = os.Unsetenv(k)
			if old, ok := backup[k]; ok && old != "" {
				_ = os.Setenv(k, old)
			}
		}
	}()

	fn()
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("awair-prometheus-exporter", flag.ContinueOnError)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(newFlagSet(), []string{"--target", "http://192.168.1.20"})
	require.NoError(t, err)

	require.Equal(t, "http://192.168.1.20", cfg.Target.String())
	require.Equal(t, 8888, cfg.MetricsPort)
	require.Equal(t, ":8888", cfg.Addr())
	require.Zero(t, cfg.PollTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.Logger)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := load(newFlagSet(), []string{
		"--target=https://awair.local/",
		"--metrics-port=9101",
		"--poll-timeout=3s",
		"--log-level=debug",
	})
	require.NoError(t, err)

	require.Equal(t, "https", cfg.Target.Scheme)
	require.Equal(t, "awair.local", cfg.Target.Host)
	require.Equal(t, 9101, cfg.MetricsPort)
	require.Equal(t, 3*time.Second, cfg.PollTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_TargetWithoutScheme(t *testing.T) {
	cfg, err := load(newFlagSet(), []string{"-target", "10.0.0.5:8080"})
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8080", cfg.Target.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing_target", nil, ErrMissingTarget},
		{"blank_target", []string{"--target", "  "}, ErrMissingTarget},
		{"bad_scheme", []string{"--target", "ftp://awair.local"}, ErrInvalidTarget},
		{"no_host", []string{"--target", "http://"}, ErrInvalidTarget},
		{"unparsable", []string{"--target", "http://[::1"}, ErrInvalidTarget},
		{"port_zero", []string{"--target", "http://a", "--metrics-port", "0"}, ErrInvalidPort},
		{"port_too_big", []string{"--target", "http://a", "--metrics-port", "70000"}, ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(newFlagSet(), tt.args)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_BadFlagValues(t *testing.T) {
	cases := [][]string{
		{"--target", "http://a", "--metrics-port", "abc"},
		{"--target", "http://a", "--poll-timeout", "soon"},
		{"--target", "http://a", "--poll-timeout", "-1s"},
		{"--target", "http://a", "--log-level", "loud"},
		{"--unknown"},
	}
	for _, args := range cases {
		fs := newFlagSet()
		fs.SetOutput(nopWriter{})
		_, err := load(fs, args)
		require.Error(t, err, "%v", args)
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLoad_EnvironmentOverridesFlags(t *testing.T) {
	env := map[string]string{
		"TARGET":       "http://10.1.1.1",
		"METRICS_PORT": "9200",
		"POLL_TIMEOUT": "750ms",
		"LOG_LEVEL":    "warn",
	}
	setEnvAndRun(t, env, func() {
		cfg, err := load(newFlagSet(), []string{"--target", "http://10.2.2.2", "--metrics-port", "9300"})
		require.NoError(t, err)
		require.Equal(t, "http://10.1.1.1", cfg.Target.String())
		require.Equal(t, 9200, cfg.MetricsPort)
		require.Equal(t, 750*time.Millisecond, cfg.PollTimeout)
		require.Equal(t, "warn", cfg.LogLevel)
	})
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	for _, env := range []map[string]string{
		{"METRICS_PORT": "eighty"},
		{"POLL_TIMEOUT": "forever"},
	} {
		setEnvAndRun(t, env, func() {
			_, err := load(newFlagSet(), []string{"--target", "http://a"})
			require.Error(t, err)
		})
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "exporter.json", `{
		"target": "http://awair-office",
		"metrics_port": 9000,
		"poll_timeout": "2s",
		"log_level": "error"
	}`)

	cfg, err := load(newFlagSet(), []string{"-c", path, "--metrics-port", "9001"})
	require.NoError(t, err)
	require.Equal(t, "http://awair-office", cfg.Target.String())
	require.Equal(t, 9001, cfg.MetricsPort, "flags take priority over the file")
	require.Equal(t, 2*time.Second, cfg.PollTimeout)
	require.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_YAMLFileFromEnv(t *testing.T) {
	path := writeFile(t, "exporter.yaml", "target: http://awair-bedroom\nmetrics_port: 9002\n")

	setEnvAndRun(t, map[string]string{"CONFIG": path}, func() {
		cfg, err := load(newFlagSet(), nil)
		require.NoError(t, err)
		require.Equal(t, "http://awair-bedroom", cfg.Target.String())
		require.Equal(t, 9002, cfg.MetricsPort)
	})
}

func TestLoad_FileErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")
	broken := writeFile(t, "broken.json", `{"target":`)
	badTimeout := writeFile(t, "timeout.yml", "target: http://a\npoll_timeout: later\n")

	for _, path := range []string{missing, broken, badTimeout} {
		_, err := load(newFlagSet(), []string{"--config", path})
		require.Error(t, err, path)
	}
}

func TestNewExporterConfig(t *testing.T) {
	oldArgs, oldFlags := os.Args, flag.CommandLine
	t.Cleanup(func() { os.Args, flag.CommandLine = oldArgs, oldFlags })

	os.Args = []string{"awair-prometheus-exporter", "--target", "http://awair.local", "--metrics-port", "9999"}
	flag.CommandLine = newFlagSet()

	cfg, err := NewExporterConfig()
	require.NoError(t, err)
	require.Equal(t, "awair.local", cfg.Target.Host)
	require.Equal(t, 9999, cfg.MetricsPort)
}
