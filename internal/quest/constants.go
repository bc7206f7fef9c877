package quest

// Log messages
const (
	LogMsgAnswerRecorded    = "Quest answer recorded"
	LogMsgProvinceCompleted = "Province quest completed"
	LogMsgPublishFailed     = "Failed to publish quest event"
)
