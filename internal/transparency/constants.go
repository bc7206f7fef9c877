package transparency

// Donation breakdown percentages, in display order
var breakdownShares = []struct {
	Category   string
	Percentage int
}{
	{"Farming Family", 40},
	{"Seed Bank Storage", 20},
	{"Digital Preservation", 15},
	{"Cultural Partners", 10},
	{"Platform Maintenance", 15},
}

// Impact figures reported with every breakdown
const (
	ImpactFarmersSupported = "2 families"
	ImpactSeedBankPercent  = 20
	ImpactResearchPercent  = 15
	ImpactCommunityPercent = 10
)

// HashBytes is the length of a simulated transaction hash before hex encoding
const HashBytes = 32

// Log messages
const (
	LogMsgTransactionRecorded       = "Simulated transaction recorded"
	LogMsgTransactionVoided         = "Simulated transaction voided"
	LogMsgTransactionConfirmed      = "Transaction reached final confirmation"
	LogMsgConfirmationPublishFailed = "Failed to publish confirmation event"
)
