package eventlog

// Activity types
const (
	ActivitySeed     = "seed"
	ActivityAdoption = "adoption"
	ActivityQuest    = "quest"
	ActivityBadge    = "badge"
	ActivityLevel    = "level"
)

// Feed limits
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log activity"
	LogMsgEventLogged      = "Activity logged"
)

// Log messages - retention
const (
	LogMsgPruneFailed = "Activity pruning failed"
	LogMsgPruned      = "Old activity pruned"
)

// Log field keys
const (
	LogFieldType    = "type"
	LogFieldUserID  = "user_id"
	LogFieldError   = "error"
	LogFieldCutoff  = "cutoff"
	LogFieldRemoved = "removed"
)
