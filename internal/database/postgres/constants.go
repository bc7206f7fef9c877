package postgres

// Error messages
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToRollback         = "Failed to rollback transaction"
	ErrMsgEncodeColumn             = "failed to encode column"
	ErrMsgDecodeColumn             = "failed to decode column"
)

// Log messages
const (
	LogMsgCropsSeeded = "Crop catalog seeded"
)
