package adoption

// Log messages
const (
	LogMsgCheckoutStarted   = "Checkout started"
	LogMsgCheckoutStep      = "Checkout step changed"
	LogMsgAdoptionCompleted = "Adoption completed"
	LogMsgAdoptionFailed    = "Adoption failed"
	LogMsgPublishFailed     = "Failed to publish checkout event"
	LogMsgSessionsPruned    = "Pruned finished checkout sessions"
	LogMsgRollbackFailed    = "Failed to roll back adoption"
)

// FailureCropTaken is the failure reason when another visitor adopted the crop first
const FailureCropTaken = "crop was adopted by another visitor"

// FailureProcessing is the failure reason when recording the adoption failed
const FailureProcessing = "adoption could not be recorded"
