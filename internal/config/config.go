package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the mock server.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Cache       CacheConfig
	Mock        MockConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type AuthConfig struct {
	// Users is the fixed set of accepted username/password pairs.
	Users map[string]string
	// CookieTTL is the lifetime of the bearer-token cookie.
	CookieTTL time.Duration
}

type CacheConfig struct {
	// ResultTTL is how long a retained result set survives without access.
	ResultTTL time.Duration
	// SweepInterval is how often the expiry sweep runs.
	SweepInterval time.Duration
}

type MockConfig struct {
	// Seed fixes the record generator; 0 seeds from the clock.
	Seed int64
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the mock server can boot anywhere.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "zmf-mock"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Auth: AuthConfig{
			Users:     parseUsers(getString("AUTH_USERS", "testuser:testpass,ADMIN:ADMIN")),
			CookieTTL: getDuration("AUTH_COOKIE_TTL", 8*time.Hour),
		},
		Cache: CacheConfig{
			ResultTTL:     getDuration("CACHE_RESULT_TTL", 15*time.Minute),
			SweepInterval: getDuration("CACHE_SWEEP_INTERVAL", 5*time.Minute),
		},
		Mock: MockConfig{
			Seed: getInt64("MOCK_SEED", 0),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if len(cfg.Auth.Users) == 0 {
		return nil, fmt.Errorf("config: AUTH_USERS yielded no valid credential pairs")
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// parseUsers decodes "user:pass,user:pass" pairs, skipping malformed entries.
func parseUsers(raw string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		username, password, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || username == "" {
			continue
		}
		users[username] = password
	}
	return users
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
