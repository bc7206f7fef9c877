package domain

// Question is one trivia item within a province quest
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Options     []string `json:"options" yaml:"options"`
	Answer      int      `json:"-" yaml:"answer"`
	Explanation string   `json:"-" yaml:"explanation"`
}

// Province is a cultural quest keyed by province
type Province struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Region    string     `json:"region" yaml:"region"`
	Badge     string     `json:"badge" yaml:"badge"`
	Questions []Question `json:"-" yaml:"questions"`
}

// IsComplete reports whether progress covers every question
func (p Province) IsComplete(progress int) bool {
	return progress >= len(p.Questions)
}

// ProvinceView is a province with one visitor's progress
type ProvinceView struct {
	Province
	QuestionCount int  `json:"question_count"`
	Progress      int  `json:"progress"`
	Completed     bool `json:"completed"`
}

// RewardSummary lists what an action earned
type RewardSummary struct {
	Tokens       int      `json:"tokens"`
	Experience   int      `json:"experience"`
	Badges       []string `json:"badges,omitempty"`
	LeveledUp    bool     `json:"leveled_up"`
	LevelReached int      `json:"level_reached,omitempty"`
}

// AnswerResult is the outcome of answering the current question
type AnswerResult struct {
	ProvinceID    string        `json:"province_id"`
	QuestionID    string        `json:"question_id"`
	Correct       bool          `json:"correct"`
	CorrectOption int           `json:"correct_option"`
	Explanation   string        `json:"explanation"`
	Progress      int           `json:"progress"`
	QuestionCount int           `json:"question_count"`
	Completed     bool          `json:"completed"`
	Rewards       RewardSummary `json:"rewards"`
}

// CurrentQuestion is the next unanswered question of a province
type CurrentQuestion struct {
	ProvinceID    string   `json:"province_id"`
	Index         int      `json:"index"`
	QuestionCount int      `json:"question_count"`
	Question      Question `json:"question"`
}
