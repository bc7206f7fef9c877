// Package content loads the museum's seed data: the crop catalog, quest
// provinces, tour guide knowledge base and dashboard fixtures.
package content

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

//go:embed data/*.yaml
var embedded embed.FS

// GuideEntry is one knowledge base topic
type GuideEntry struct {
	Key      string            `yaml:"key"`
	Category string            `yaml:"category"`
	Answers  map[string]string `yaml:"answers"`
}

// Guide is the tour guide knowledge base, ordered by match priority
type Guide struct {
	Entries []GuideEntry      `yaml:"entries"`
	Default map[string]string `yaml:"default"`
}

// DemoProfile is the visitor seeded for walkthroughs
type DemoProfile struct {
	UserID               string         `yaml:"user_id"`
	DisplayName          string         `yaml:"display_name"`
	NFTsOwned            int            `yaml:"nfts_owned"`
	TotalDonated         int64          `yaml:"total_donated"`
	TreesPlanted         int            `yaml:"trees_planted"`
	Badges               []string       `yaml:"badges"`
	Tokens               int            `yaml:"tokens"`
	ConsecutiveDonations int            `yaml:"consecutive_donations"`
	TotalXP              int64          `yaml:"total_xp"`
	QuestProgress        map[string]int `yaml:"quest_progress"`
}

// Content is everything loaded from the data directory
type Content struct {
	Crops       []domain.Crop             `yaml:"crops"`
	Provinces   []domain.Province         `yaml:"provinces"`
	Guide       Guide                     `yaml:"guide"`
	Wallets     []domain.WalletProvider   `yaml:"wallets"`
	Highlights  []domain.Highlight        `yaml:"highlights"`
	Leaderboard []domain.LeaderboardEntry `yaml:"leaderboard"`
	Activity    []string                  `yaml:"activity"`
	Community   domain.CommunityStats     `yaml:"community"`
	DemoProfile DemoProfile               `yaml:"demo_profile"`
}

// Load reads the embedded content
func Load() (*Content, error) {
	sub, err := fs.Sub(embedded, DataDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadContent, err)
	}
	return LoadFS(sub)
}

// LoadFS reads and merges every YAML file at the root of fsys, then validates the result
func LoadFS(fsys fs.FS) (*Content, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadContent, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: no yaml files", ErrMsgReadContent)
	}

	c := &Content{}
	merged := make(map[string]any)
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgReadContent, name, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgParseContent, name, err)
		}
		for k, v := range doc {
			merged[k] = v
		}
		// Each file fills a disjoint set of top-level keys, so decoding into the same struct merges them.
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("%s %s: %w", ErrMsgParseContent, name, err)
		}
	}

	if err := ValidateSchema(merged); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks referential integrity of the loaded content
func (c *Content) Validate() error {
	if len(c.Crops) == 0 {
		return fmt.Errorf("%s: catalog is empty", ErrMsgInvalidContent)
	}

	cropIDs := make(map[int]bool, len(c.Crops))
	for _, crop := range c.Crops {
		if cropIDs[crop.ID] {
			return fmt.Errorf("%s: duplicate crop id %d", ErrMsgInvalidContent, crop.ID)
		}
		cropIDs[crop.ID] = true
		if crop.Name == "" {
			return fmt.Errorf("%s: crop %d has no name", ErrMsgInvalidContent, crop.ID)
		}
		if !crop.Rarity.Valid() {
			return fmt.Errorf("%s: crop %d has unknown rarity %q", ErrMsgInvalidContent, crop.ID, crop.Rarity)
		}
		if crop.PreservationValue <= 0 {
			return fmt.Errorf("%s: crop %d has no preservation value", ErrMsgInvalidContent, crop.ID)
		}
	}

	provinceIDs := make(map[string]bool, len(c.Provinces))
	for _, p := range c.Provinces {
		if provinceIDs[p.ID] {
			return fmt.Errorf("%s: duplicate province %q", ErrMsgInvalidContent, p.ID)
		}
		provinceIDs[p.ID] = true
		if len(p.Questions) == 0 {
			return fmt.Errorf("%s: province %q has no questions", ErrMsgInvalidContent, p.ID)
		}
		for _, q := range p.Questions {
			if q.Answer < 0 || q.Answer >= len(q.Options) {
				return fmt.Errorf("%s: question %q answer %d out of range", ErrMsgInvalidContent, q.ID, q.Answer)
			}
		}
	}

	for province := range c.DemoProfile.QuestProgress {
		if !provinceIDs[province] {
			return fmt.Errorf("%s: demo progress for unknown province %q", ErrMsgInvalidContent, province)
		}
	}

	if _, ok := c.Guide.Default[DefaultLanguage]; !ok {
		return fmt.Errorf("%s: guide has no %s default answer", ErrMsgInvalidContent, DefaultLanguage)
	}

	if len(c.Wallets) == 0 {
		return fmt.Errorf("%s: no wallet providers", ErrMsgInvalidContent)
	}

	return nil
}

// Wallet looks up a wallet provider by id
func (c *Content) Wallet(id string) (domain.WalletProvider, bool) {
	for _, w := range c.Wallets {
		if w.ID == id {
			return w, true
		}
	}
	return domain.WalletProvider{}, false
}
