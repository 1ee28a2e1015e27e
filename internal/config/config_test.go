package config

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("server", nil, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load() = %+v; want %+v", cfg, Default())
	}
	if got := cfg.Addr(); got != ":3000" {
		t.Fatalf("Addr() = %q; want %q", got, ":3000")
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		wantPort int
		wantDir  string
	}{
		{
			name:     "env overrides default",
			env:      map[string]string{"PORT": "8080", "PUBLIC_DIR": "/srv/www"},
			wantPort: 8080,
			wantDir:  "/srv/www",
		},
		{
			name:     "flag overrides env",
			args:     []string{"-port", "9090", "-public", "web"},
			env:      map[string]string{"PORT": "8080"},
			wantPort: 9090,
			wantDir:  "web",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load("server", tt.args, env(tt.env), io.Discard)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Port != tt.wantPort || cfg.PublicDir != tt.wantDir {
				t.Fatalf("Load() port=%d dir=%q; want port=%d dir=%q",
					cfg.Port, cfg.PublicDir, tt.wantPort, tt.wantDir)
			}
		})
	}
}

func TestLoadFlags(t *testing.T) {
	t.Parallel()

	cfg, err := Load("server", []string{
		"-seed=false",
		"-max-body", "512",
		"-shutdown-timeout", "2s",
		"-log-level", "debug",
		"-log-format", "text",
	}, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Seed {
		t.Error("Seed = true; want false")
	}
	if cfg.MaxBodyBytes != 512 {
		t.Errorf("MaxBodyBytes = %d; want 512", cfg.MaxBodyBytes)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("ShutdownTimeout = %v; want 2s", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v; want DEBUG", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q; want text", cfg.LogFormat)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "non-numeric PORT", env: map[string]string{"PORT": "http"}},
		{name: "bad LOG_LEVEL", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "port out of range", args: []string{"-port", "70000"}},
		{name: "zero body cap", args: []string{"-max-body", "0"}},
		{name: "unknown log format", args: []string{"-log-format", "xml"}},
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "stray argument", args: []string{"extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Load("server", tt.args, env(tt.env), io.Discard); err == nil {
				t.Fatal("Load() error = nil; want error")
			}
		})
	}
}
