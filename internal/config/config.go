package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error DEBUG INFO WARN ERROR"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	TrustedProxies []string

	StorageDriver string `validate:"oneof=memory postgres"`
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int `validate:"min=1"`

	SeedDemo bool

	CheckoutProcessingDelay time.Duration `validate:"gt=0"`
	ConfirmationInterval    time.Duration `validate:"gt=0"`
	CommunityTickInterval   time.Duration `validate:"gt=0"`

	ProfileCacheSize int           `validate:"min=1"`
	ProfileCacheTTL  time.Duration `validate:"gt=0"`

	EventMaxRetries     int `validate:"min=0"`
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	ActivityRetentionDays int           `validate:"min=1"`
	SessionTTL            time.Duration `validate:"gt=0"`
	SessionPruneInterval  time.Duration `validate:"gt=0"`
	SSEKeepalive          time.Duration `validate:"gt=0"`
	MaxRequestBytes       int64         `validate:"min=1024"`
	RateLimitPerWindow    int           `validate:"min=1"`
	RateLimitWindow       time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:              getEnv("API_KEY", ""),
		LogLevel:            getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:           getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:              getEnv("LOG_DIR", DefaultLogDir),
		Environment:         getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName:         getEnv("SERVICE_NAME", DefaultServiceName),
		Version:             getEnv("VERSION", "dev"),
		TrustedProxies:      splitList(getEnv("TRUSTED_PROXIES", "")),
		StorageDriver:       strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBName:              getEnv("DB_NAME", DefaultDBName),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	var err error
	if cfg.Port, err = getInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.DBMaxConns, err = getInt("DB_MAX_CONNS", DefaultDBMaxConns); err != nil {
		return nil, err
	}
	if cfg.ProfileCacheSize, err = getInt("PROFILE_CACHE_SIZE", DefaultProfileCacheSize); err != nil {
		return nil, err
	}
	if cfg.EventMaxRetries, err = getInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries); err != nil {
		return nil, err
	}
	if cfg.ActivityRetentionDays, err = getInt("ACTIVITY_RETENTION_DAYS", DefaultActivityRetentionDays); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerWindow, err = getInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests); err != nil {
		return nil, err
	}
	if cfg.MaxRequestBytes, err = strconv.ParseInt(getEnv("MAX_REQUEST_BYTES", DefaultMaxRequestBytes), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid MAX_REQUEST_BYTES value: %w", err)
	}
	if cfg.SeedDemo, err = strconv.ParseBool(getEnv("SEED_DEMO", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO value: %w", err)
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"CHECKOUT_PROCESSING_DELAY", DefaultCheckoutProcessingDelay, &cfg.CheckoutProcessingDelay},
		{"CONFIRMATION_INTERVAL", DefaultConfirmationInterval, &cfg.ConfirmationInterval},
		{"COMMUNITY_TICK_INTERVAL", DefaultCommunityTickInterval, &cfg.CommunityTickInterval},
		{"PROFILE_CACHE_TTL", DefaultProfileCacheTTL, &cfg.ProfileCacheTTL},
		{"EVENT_RETRY_DELAY", DefaultEventRetryDelay, &cfg.EventRetryDelay},
		{"SESSION_TTL", DefaultSessionTTL, &cfg.SessionTTL},
		{"SESSION_PRUNE_INTERVAL", DefaultSessionPruneInterval, &cfg.SessionPruneInterval},
		{"SSE_KEEPALIVE", DefaultSSEKeepalive, &cfg.SSEKeepalive},
		{"RATE_LIMIT_WINDOW", DefaultRateLimitWindow, &cfg.RateLimitWindow},
	}
	for _, d := range durations {
		if *d.dest, err = getDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UsePostgres reports whether the Postgres store is configured
func (c *Config) UsePostgres() bool {
	return c.StorageDriver == StoragePostgres
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}
