package rewards

// Reward amounts
const (
	AdoptionTokens = 1
	AdoptionXP     = 100
	AdoptionTrees  = 1

	CorrectAnswerTokens = 1
	CorrectAnswerXP     = 25

	ProvinceCompletionTokens = 1
	ProvinceCompletionXP     = 50
)

// Leveling
const (
	// XPPerLevel is the flat amount of XP between consecutive levels
	XPPerLevel = 100
	StartLevel = 1
)

// TreeMilestoneStep is the spacing of tree-planting milestones; one token plants one tree
const TreeMilestoneStep = 5

// TrackedBadgeLimit is how many locked badges the dashboard reports progress for
const TrackedBadgeLimit = 2

// Badge IDs
const (
	BadgeBinhiWarrior   = "binhi-warrior"
	BadgePatubigPatron  = "patubig-patron"
	BadgeBantayBukid    = "bantay-bukid"
	BadgeTahananHero    = "tahanan-hero"
	BadgeTreePlanter    = "tree-planter"
	BadgeFirstSupporter = "first-supporter"
)

// LogMsgPublishFailed is logged when a reward event cannot be published
const LogMsgPublishFailed = "Failed to publish reward event"
