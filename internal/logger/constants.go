package logger

// Levels accepted in LOG_LEVEL; "warning" is an alias for warn
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Formats accepted in LOG_FORMAT
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults when the environment says nothing
const (
	DefaultServiceName = "binhi-heritage"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

// Environment variables read by FromEnv
const (
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvVersion     = "VERSION"
	EnvEnvironment = "ENVIRONMENT"
	EnvAddSource   = "LOG_ADD_SOURCE"
)

// Attribute keys attached to every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
