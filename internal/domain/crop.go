package domain

import "strings"

// Rarity is the museum's four-tier rarity scale, named in Filipino
type Rarity string

const (
	RarityKaraniwan  Rarity = "Karaniwan"
	RarityBihira     Rarity = "Bihira"
	RarityMahalagang Rarity = "Mahalagang"
	RarityAlamat     Rarity = "Alamat"
)

// Rarities lists every rarity from most to least common
var Rarities = []Rarity{RarityKaraniwan, RarityBihira, RarityMahalagang, RarityAlamat}

// Valid reports whether r is one of the known rarities
func (r Rarity) Valid() bool {
	for _, known := range Rarities {
		if r == known {
			return true
		}
	}
	return false
}

// English returns the common/rare/epic/legendary label
func (r Rarity) English() string {
	switch r {
	case RarityKaraniwan:
		return "common"
	case RarityBihira:
		return "rare"
	case RarityMahalagang:
		return "epic"
	case RarityAlamat:
		return "legendary"
	default:
		return "unknown"
	}
}

// ParseRarity accepts either the Filipino or English label, case-insensitively
func ParseRarity(s string) (Rarity, bool) {
	for _, r := range Rarities {
		if strings.EqualFold(s, string(r)) || strings.EqualFold(s, r.English()) {
			return r, true
		}
	}
	return "", false
}

// ConservationStatus of a crop variety
type ConservationStatus string

const (
	StatusStable               ConservationStatus = "Stable"
	StatusVulnerable           ConservationStatus = "Vulnerable"
	StatusEndangered           ConservationStatus = "Endangered"
	StatusCriticallyEndangered ConservationStatus = "Critically Endangered"
)

// Traits describes a crop's agronomic and cultural properties
type Traits struct {
	GrowthCycle          string `json:"growth_cycle" yaml:"growth_cycle"`
	YieldPotential       string `json:"yield_potential" yaml:"yield_potential"`
	ClimateAdaptation    string `json:"climate_adaptation" yaml:"climate_adaptation"`
	CulturalSignificance string `json:"cultural_significance" yaml:"cultural_significance"`
}

// Crop is a heirloom seed variety exhibited in the museum and available for adoption
type Crop struct {
	ID                 int                `json:"id" yaml:"id"`
	Name               string             `json:"name" yaml:"name"`
	Type               string             `json:"type" yaml:"type"`
	Rarity             Rarity             `json:"rarity" yaml:"rarity"`
	ConservationStatus ConservationStatus `json:"conservation_status" yaml:"conservation_status"`
	PreservationValue  int64              `json:"preservation_value" yaml:"preservation_value"`
	Description        string             `json:"description" yaml:"description"`
	Location           string             `json:"location" yaml:"location"`
	Province           string             `json:"province" yaml:"province"`
	Traits             Traits             `json:"traits" yaml:"traits"`
	Adopted            bool               `json:"adopted" yaml:"adopted"`
	AdoptedBy          string             `json:"adopted_by,omitempty" yaml:"-"`
}

// FormattedValue returns the preservation value as a peso string
func (c Crop) FormattedValue() string {
	return FormatPeso(c.PreservationValue)
}

// CropFilter narrows a catalog listing. Empty fields and "all" match everything.
type CropFilter struct {
	Search string
	Type   string
	Rarity string
}
