package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/projecthelena/pgsample/internal/db"
)

type Config struct {
	ListenAddr string
	DB         db.DBConfig
	TrustProxy bool

	// RateLimitRPS of 0 disables per-IP limiting on /sample.
	RateLimitRPS   float64
	RateLimitBurst int
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		DB: db.DBConfig{
			Type:         db.DialectPostgres,
			Driver:       db.DriverPQ,
			Port:         5432,
			SSLMode:      "require",
			Path:         "pgsample.db",
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  30 * time.Second,
		},
		RateLimitBurst: 20,
	}
}

func Load() (*Config, error) {
	cfg := Default()

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if listen := os.Getenv("LISTEN_ADDR"); listen != "" {
		cfg.ListenAddr = listen
	}

	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		cfg.DB.Type = db.Dialect(strings.ToLower(dbType))
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if driver := os.Getenv("POSTGRES_DRIVER"); driver != "" {
		cfg.DB.Driver = db.Driver(strings.ToLower(driver))
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DB.DSN = dsn
	}
	cfg.DB.User = os.Getenv("POSTGRES_USER")
	cfg.DB.Name = os.Getenv("POSTGRES_DATABASE_NAME")
	cfg.DB.Password = os.Getenv("POSTGRES_PASSWORD")
	cfg.DB.Host = os.Getenv("POSTGRES_HOSTNAME")
	cfg.DB.Port = envInt("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.SSLMode = ParseSSLMode(os.Getenv("POSTGRES_SSL"))

	cfg.DB.MaxOpenConns = envInt("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = envInt("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)
	cfg.DB.MaxIdleTime = envDuration("DB_MAX_IDLE_TIME", cfg.DB.MaxIdleTime)
	cfg.DB.AcquireTimeout = envDuration("DB_ACQUIRE_TIMEOUT", cfg.DB.AcquireTimeout)

	if os.Getenv("TRUST_PROXY") == "true" {
		cfg.TrustProxy = true
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps >= 0 {
			cfg.RateLimitRPS = rps
		}
	}
	cfg.RateLimitBurst = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	return &cfg, nil
}

// ParseSSLMode maps POSTGRES_SSL to a libpq sslmode. TLS is on unless the
// value explicitly turns it off.
func ParseSSLMode(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "":
		return "require"
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		return v
	}
	on, err := strconv.ParseBool(v)
	if err == nil && !on {
		return "disable"
	}
	return "require"
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
