package domain

// BadgeRarity is the English rarity label used for badges
type BadgeRarity string

const (
	BadgeCommon    BadgeRarity = "common"
	BadgeRare      BadgeRarity = "rare"
	BadgeEpic      BadgeRarity = "epic"
	BadgeLegendary BadgeRarity = "legendary"
)

// Badge is an achievement unlocked by reaching a stats threshold
type Badge struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Rarity      BadgeRarity `json:"rarity"`
}

// BadgeStatus pairs a badge with whether a visitor holds it
type BadgeStatus struct {
	Badge
	Unlocked bool `json:"unlocked"`
}
