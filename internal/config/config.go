package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Logger   LoggerConfig
	Security SecurityConfig
	Table    TableConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DataConfig selects where sale records come from. An empty CSVFile means
// SampleSize synthetic records are generated instead.
type DataConfig struct {
	CSVFile    string
	SampleSize int
	SampleSeed uint64
	SampleYear int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type SecurityConfig struct {
	EnableRateLimit bool
	RateLimitRPS    int
	RateLimitBurst  int
	AllowedOrigins  []string
	TrustedProxies  []string
}

type TableConfig struct {
	PageSize int
	Locale   string
}

type CacheConfig struct {
	Size int
}

var defaults = map[string]any{
	"SERVER_HOST":                 "localhost",
	"SERVER_PORT":                 8084,
	"SERVER_READ_TIMEOUT":         10 * time.Second,
	"SERVER_WRITE_TIMEOUT":        10 * time.Second,
	"SERVER_IDLE_TIMEOUT":         60 * time.Second,
	"SERVER_SHUTDOWN_TIMEOUT":     30 * time.Second,
	"CSV_FILE":                    "",
	"DATA_SAMPLE_SIZE":            50,
	"DATA_SAMPLE_SEED":            2024,
	"DATA_SAMPLE_YEAR":            2024,
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"SECURITY_RATE_LIMIT_ENABLED": true,
	"SECURITY_RATE_LIMIT_RPS":     100,
	"SECURITY_RATE_LIMIT_BURST":   10,
	"SECURITY_ALLOWED_ORIGINS":    "http://localhost:8084",
	"SECURITY_TRUSTED_PROXIES":    "127.0.0.1",
	"TABLE_PAGE_SIZE":             10,
	"TABLE_LOCALE":                "en-US",
	"CACHE_SIZE":                  128,
}

// Load reads configuration from the environment, falling back to an optional
// config file named by CONFIG_FILE and then to defaults.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration through v. Values already set on v take
// precedence over the environment.
func LoadWith(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Data: DataConfig{
			CSVFile:    v.GetString("CSV_FILE"),
			SampleSize: v.GetInt("DATA_SAMPLE_SIZE"),
			SampleSeed: v.GetUint64("DATA_SAMPLE_SEED"),
			SampleYear: v.GetInt("DATA_SAMPLE_YEAR"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Security: SecurityConfig{
			EnableRateLimit: v.GetBool("SECURITY_RATE_LIMIT_ENABLED"),
			RateLimitRPS:    v.GetInt("SECURITY_RATE_LIMIT_RPS"),
			RateLimitBurst:  v.GetInt("SECURITY_RATE_LIMIT_BURST"),
			AllowedOrigins:  splitList(v.GetString("SECURITY_ALLOWED_ORIGINS")),
			TrustedProxies:  splitList(v.GetString("SECURITY_TRUSTED_PROXIES")),
		},
		Table: TableConfig{
			PageSize: v.GetInt("TABLE_PAGE_SIZE"),
			Locale:   v.GetString("TABLE_LOCALE"),
		},
		Cache: CacheConfig{
			Size: v.GetInt("CACHE_SIZE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.CSVFile == "" && c.Data.SampleSize <= 0 {
		return fmt.Errorf("sample size must be positive when no CSV file is configured")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	if c.Table.PageSize <= 0 {
		return fmt.Errorf("table page size must be positive, got %d", c.Table.PageSize)
	}

	if _, err := language.Parse(c.Table.Locale); err != nil {
		return fmt.Errorf("invalid table locale %q: %w", c.Table.Locale, err)
	}

	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}

	return nil
}

// LocaleTag returns the parsed table locale. validate guarantees it parses.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Table.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
