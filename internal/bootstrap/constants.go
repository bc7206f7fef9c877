package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Log file rotation
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// Event system defaults, used when config leaves them zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Background work
const (
	WorkerPoolSize       = 2
	WorkerQueueSize      = 16
	JobCommunityTick     = "community_tick"
	JobActivityCleanup   = "activity_cleanup"
	JobSessionPrune      = "checkout_session_prune"
	ActivityCleanupEvery = 24 * time.Hour
)

// Log messages
const (
	LogMsgLoggingInitialized         = "Logging initialized"
	LogMsgStarting                   = "Starting Binhi Heritage Museum"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgFailedDeleteOldLog         = "Failed to delete old log file"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgStorageMemory              = "Using in-memory store"
	LogMsgStoragePostgres            = "Using Postgres store"
	LogMsgMigrationsApplied          = "Database migrations applied"
	LogMsgDemoSeeded                 = "Demo visitor seeded"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgWorkerShutdownFailed       = "Worker shutdown failed"
	LogMsgFailedCreateDeadLetterDir  = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPub   = "failed to create resilient publisher"
	ErrMsgFailedCreateLogsDir        = "failed to create logs directory"
	ErrMsgFailedOpenLogFile          = "failed to open log file"
	ErrMsgFailedLoadContent          = "failed to load museum content"
	ErrMsgFailedOpenDatabase         = "failed to open database"
	ErrMsgFailedMigrate              = "failed to apply migrations"
	ErrMsgFailedSeedCrops            = "failed to seed crop catalog"
	ErrMsgFailedSeedDemo             = "failed to seed demo visitor"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Postgres pool tuning
const (
	DBMaxConnIdle = 5 * time.Minute
	DBMaxConnLife = time.Hour
)
