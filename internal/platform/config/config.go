package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "supportdir/pkg/platform/strings"
)

// Config captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Config struct {
	Server       Server
	Log          Log
	Postgres     Postgres
	Redis        Redis
	SMTP         SMTP
	Geocode      Geocode
	Verification Verification
	Kafka        Kafka
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Log selects level and output format for the root logger.
type Log struct {
	Level  string
	Format string
}

// Postgres holds the connection string for the organisation store. An empty
// URL selects the in-memory store.
type Postgres struct {
	URL string
}

// Redis holds geocode cache connection settings. An empty URL disables the
// cache and resolutions go straight to the lookup service.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SMTP configures the outbound mail transport for lifecycle notifications.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Geocode configures the postcode lookup client and its cache.
type Geocode struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Verification configures the lifecycle scan.
type Verification struct {
	ReminderDay int
	ExpiryDay   int
	Workers     int
	CallTimeout time.Duration
	// RunAtHour/RunAtMinute is the daily UTC wall-clock trigger time.
	RunAtHour   int
	RunAtMinute int
}

// Kafka configures the optional lifecycle event publisher. No brokers means
// events are not published.
type Kafka struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables with development
// defaults.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: getenv("SUPPORTDIR_ADDR", ":8080"),
		},
		Log: Log{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		Postgres: Postgres{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		SMTP: SMTP{
			Host:     getenv("SMTP_HOST", "localhost"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenv("SMTP_FROM", "no-reply@supportdir.local"),
			Timeout:  getenvDuration("SMTP_TIMEOUT", 10*time.Second),
		},
		Geocode: Geocode{
			BaseURL:  getenv("GEOCODE_BASE_URL", "https://api.postcodes.io"),
			Timeout:  getenvDuration("GEOCODE_TIMEOUT", 5*time.Second),
			CacheTTL: getenvDuration("GEOCODE_CACHE_TTL", 30*24*time.Hour),
		},
		Verification: Verification{
			ReminderDay: getenvInt("VERIFICATION_REMINDER_DAY", 90),
			ExpiryDay:   getenvInt("VERIFICATION_EXPIRY_DAY", 100),
			Workers:     getenvInt("VERIFICATION_WORKERS", 4),
			CallTimeout: getenvDuration("VERIFICATION_CALL_TIMEOUT", 15*time.Second),
			RunAtHour:   getenvInt("VERIFICATION_RUN_AT_HOUR", 9),
			RunAtMinute: getenvInt("VERIFICATION_RUN_AT_MINUTE", 0),
		},
		Kafka: Kafka{
			Brokers: pstrings.DedupeAndTrim(strings.Split(os.Getenv("KAFKA_BROKERS"), ",")),
			Topic:   getenv("KAFKA_LIFECYCLE_TOPIC", "supportdir.lifecycle"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
