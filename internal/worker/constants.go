package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the checkout worker
const (
	LogMsgFailedToLoadProcessingCheckouts = "Failed to load processing checkouts on startup"
	LogMsgSchedulingCheckoutCompletion    = "Scheduling checkout completion"
	LogMsgCompletingCheckout              = "Completing checkout"
	LogMsgFailedToCompleteCheckout        = "Failed to complete checkout"
)

// Log messages for the confirmation worker
const (
	LogMsgFailedToLoadPendingTransactions = "Failed to load pending transactions on startup"
	LogMsgTrackingTransaction             = "Tracking transaction confirmations"
	LogMsgFailedToAddConfirmation         = "Failed to add confirmation"
	LogMsgTransactionFinal                = "Transaction final, tracking stopped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
