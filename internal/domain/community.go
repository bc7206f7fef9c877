package domain

import "time"

// ProvinceCount is the number of adoptions attributed to a province
type ProvinceCount struct {
	Province  string `json:"province" yaml:"province"`
	Adoptions int    `json:"adoptions" yaml:"adoptions"`
}

// CommunityStats is the real-world-asset dashboard
type CommunityStats struct {
	TotalAdoptions       int             `json:"total_adoptions" yaml:"total_adoptions"`
	ProvincesReached     int             `json:"provinces_reached" yaml:"provinces_reached"`
	ActivePartners       int             `json:"active_partners" yaml:"active_partners"`
	FundsRaised          int64           `json:"funds_raised" yaml:"funds_raised"`
	TreesPlanted         int             `json:"trees_planted" yaml:"trees_planted"`
	CommunitiesSupported int             `json:"communities_supported" yaml:"communities_supported"`
	ConservationGoal     int64           `json:"conservation_goal" yaml:"conservation_goal"`
	MonthlyGrowth        float64         `json:"monthly_growth" yaml:"monthly_growth"`
	ProvinceAdoptions    []ProvinceCount `json:"province_adoptions" yaml:"province_adoptions"`
	GoalProgress         float64         `json:"goal_progress" yaml:"-"`
	UpdatedAt            time.Time       `json:"updated_at" yaml:"-"`
}

// GoalPercent is funds raised as a percentage of the conservation goal
func (c CommunityStats) GoalPercent() float64 {
	if c.ConservationGoal <= 0 {
		return 0
	}
	return float64(c.FundsRaised) / float64(c.ConservationGoal) * 100
}

// LeaderboardEntry is one ranked visitor
type LeaderboardEntry struct {
	Rank   int    `json:"rank" yaml:"-"`
	UserID string `json:"user_id,omitempty" yaml:"-"`
	Name   string `json:"name" yaml:"name"`
	Title  string `json:"title" yaml:"title"`
	Tokens int    `json:"tokens" yaml:"tokens"`
}

// Activity is an entry in the public activity feed
type Activity struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Highlight is a featured heritage site
type Highlight struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// Milestone is a passbook achievement
type Milestone struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Passbook is a visitor's stamp book
type Passbook struct {
	UserID              string      `json:"user_id"`
	Milestones          []Milestone `json:"milestones"`
	CompletedMilestones int         `json:"completed_milestones"`
	TotalMilestones     int         `json:"total_milestones"`
	VisitedSections     []string    `json:"visited_sections"`
	Sections            []string    `json:"sections"`
}

// GuideAnswer is the tour guide's reply
type GuideAnswer struct {
	Query    string `json:"query"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// SharePayload is a ready-to-post journey share
type SharePayload struct {
	Platform   string `json:"platform"`
	Text       string `json:"text"`
	JourneyURL string `json:"journey_url"`
	IntentURL  string `json:"intent_url,omitempty"`
}
