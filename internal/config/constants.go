package config

import "time"

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultPort                    = "8080"
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultEnvironment             = "dev"
	DefaultServiceName             = "binhi-heritage"
	DefaultLogDir                  = "logs"
	DefaultDBName                  = "binhi_heritage"
	DefaultDBMaxConns              = "10"
	DefaultCheckoutProcessingDelay = 3 * time.Second
	DefaultConfirmationInterval    = 3 * time.Second
	DefaultCommunityTickInterval   = 5 * time.Second
	DefaultProfileCacheSize        = "1000"
	DefaultProfileCacheTTL         = 5 * time.Minute
	DefaultEventMaxRetries         = "5"
	DefaultEventRetryDelay         = 2 * time.Second
	DefaultEventDeadLetterPath     = "logs/event_deadletter.jsonl"
	DefaultActivityRetentionDays   = "30"
	DefaultSessionTTL              = time.Hour
	DefaultSessionPruneInterval    = 10 * time.Minute
	DefaultSSEKeepalive            = 30 * time.Second
	DefaultMaxRequestBytes         = "1048576"
	DefaultRateLimitRequests       = "1000"
	DefaultRateLimitWindow         = 5 * time.Minute
)
