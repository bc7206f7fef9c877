package community

// Simulated growth per tick; each bound is exclusive
const (
	TickMaxAdoptions = 3
	TickMaxTrees     = 2
	TickMaxFunds     = 1000
)

// VisitorTitle is shown next to visitors on the leaderboard
const VisitorTitle = "Heritage Explorer"

// DefaultLeaderboardLimit caps leaderboard responses
const DefaultLeaderboardLimit = 10

// Log messages
const (
	LogMsgCommunityTick   = "Community stats ticked"
	LogMsgAdoptionCounted = "Adoption counted in community stats"
	LogMsgPublishFailed   = "Failed to publish community update"
)
