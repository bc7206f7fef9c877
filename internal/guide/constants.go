package guide

// Answer categories
const (
	CategoryCrop    = "crop"
	CategoryRitual  = "ritual"
	CategoryGeneral = "general"
)

var (
	cropKeywords   = []string{"rice", "siling", "corn"}
	ritualKeywords = []string{"ritual", "traditional"}
)

// Log messages
const (
	LogMsgAsked        = "Guide question answered"
	LogMsgNoMatch      = "Guide question fell back to default answer"
	LogMsgLanguageFell = "Unsupported guide language, using default"
)
