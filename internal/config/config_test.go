package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address() != "localhost:8084" {
		t.Errorf("Address() = %q, want localhost:8084", cfg.Address())
	}
	if cfg.Table.PageSize != 10 {
		t.Errorf("Table.PageSize = %d, want 10", cfg.Table.PageSize)
	}
	if cfg.Data.CSVFile != "" || cfg.Data.SampleSize != 50 {
		t.Errorf("Data = %+v, want sample data of 50 records", cfg.Data)
	}
	if got := cfg.Security.AllowedOrigins; len(got) != 1 || got[0] != "http://localhost:8084" {
		t.Errorf("AllowedOrigins = %v", got)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("TABLE_PAGE_SIZE", "25")
	t.Setenv("SECURITY_TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Table.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.Table.PageSize)
	}
	if got := strings.Join(cfg.Security.TrustedProxies, "|"); got != "10.0.0.1|10.0.0.2" {
		t.Errorf("TrustedProxies = %q", got)
	}
	if cfg.Logger.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Logger.Format)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	if err := os.WriteFile(path, []byte("table_locale: de-DE\ncache_size: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Table.Locale != "de-DE" {
		t.Errorf("Locale = %q, want de-DE", cfg.Table.Locale)
	}
	if cfg.Cache.Size != 8 {
		t.Errorf("Cache.Size = %d, want 8", cfg.Cache.Size)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"port out of range", "SERVER_PORT", 70000},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero page size", "TABLE_PAGE_SIZE", 0},
		{"bad locale", "TABLE_LOCALE", "not a locale!"},
		{"zero cache", "CACHE_SIZE", 0},
		{"no data source", "DATA_SAMPLE_SIZE", 0},
		{"zero rps", "SECURITY_RATE_LIMIT_RPS", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			if _, err := LoadWith(v); err == nil {
				t.Errorf("LoadWith(%s=%v) should fail", tt.key, tt.val)
			}
		})
	}
}
