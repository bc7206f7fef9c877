package database

import "time"

// Pool defaults
const (
	DefaultMinConnections    = 2
	DefaultHealthCheckPeriod = 30 * time.Second
	DefaultAppName           = "binhi-heritage"

	runtimeParamAppName = "application_name"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgMigrationFailed         = "migration failed"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgNoPendingMigrations             = "No pending migrations"
)
