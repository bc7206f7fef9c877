package content

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.Len(t, c.Crops, 6)
	assert.Equal(t, "Tinawon Rice", c.Crops[0].Name)
	assert.Equal(t, int64(12500), c.Crops[0].PreservationValue)
	assert.Equal(t, domain.RarityAlamat, c.Crops[0].Rarity)

	barako := c.Crops[2]
	assert.Equal(t, "Kapeng Barako", barako.Name)
	assert.True(t, barako.Adopted)
	assert.Equal(t, domain.StatusCriticallyEndangered, barako.ConservationStatus)

	wantTraits := domain.Traits{
		GrowthCycle:          "8-10 buwan",
		YieldPotential:       "Katamtaman",
		ClimateAdaptation:    "Tropical Lowland",
		CulturalSignificance: "Bohol Heritage",
	}
	if diff := cmp.Diff(wantTraits, c.Crops[5].Traits); diff != "" {
		t.Errorf("Ubi Kinampay traits mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, c.Provinces, 3)
	for _, p := range c.Provinces {
		assert.Len(t, p.Questions, 3, p.ID)
		assert.NotEmpty(t, p.Badge, p.ID)
	}
	assert.Equal(t, 1, c.Provinces[0].Questions[0].Answer)

	assert.Len(t, c.Guide.Entries, 5)
	assert.Equal(t, "tinawon rice", c.Guide.Entries[0].Key)
	assert.Len(t, c.Highlights, 3)
	assert.Len(t, c.Leaderboard, 2)
	assert.Len(t, c.Activity, 5)
	assert.Equal(t, 2847, c.Community.TotalAdoptions)
	assert.Len(t, c.Community.ProvinceAdoptions, 5)

	wantProgress := map[string]int{"ifugao": 2, "batangas": 1, "bohol": 0}
	if diff := cmp.Diff(wantProgress, c.DemoProfile.QuestProgress); diff != "" {
		t.Errorf("demo quest progress mismatch (-want +got):\n%s", diff)
	}

	w, ok := c.Wallet("metamask")
	require.True(t, ok)
	assert.Equal(t, "0x742F35Cc4C4f354F87c20A1c34a45B23E5CE5E4e", w.Address)
}

func TestLoadFS_Validation(t *testing.T) {
	base := `
wallets:
  - {id: metamask, name: MetaMask, address: "0x1"}
guide:
  default: {en: hello}
`
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "no files",
			files:   map[string]string{},
			wantErr: "no yaml files",
		},
		{
			name: "empty catalog",
			files: map[string]string{
				"a.yaml": base,
			},
			wantErr: "catalog is empty",
		},
		{
			name: "duplicate crop",
			files: map[string]string{
				"a.yaml": base,
				"b.yaml": `
crops:
  - {id: 1, name: A, rarity: Alamat, preservation_value: 1}
  - {id: 1, name: B, rarity: Alamat, preservation_value: 1}
`,
			},
			wantErr: "duplicate crop id 1",
		},
		{
			name: "bad rarity",
			files: map[string]string{
				"a.yaml": base,
				"b.yaml": `
crops:
  - {id: 1, name: A, rarity: Mythic, preservation_value: 1}
`,
			},
			wantErr: "at /crops/0/rarity: enum validation failed",
		},
		{
			name: "answer out of range",
			files: map[string]string{
				"a.yaml": base,
				"b.yaml": `
crops:
  - {id: 1, name: A, rarity: Alamat, preservation_value: 1}
provinces:
  - id: p
    name: P
    badge: B
    questions:
      - {id: q, prompt: Q, options: [x, y], answer: 2}
`,
			},
			wantErr: "answer 2 out of range",
		},
		{
			name: "question without prompt",
			files: map[string]string{
				"a.yaml": base,
				"b.yaml": `
crops:
  - {id: 1, name: A, rarity: Alamat, preservation_value: 1}
provinces:
  - id: p
    name: P
    badge: B
    questions:
      - {id: q, options: [x, y], answer: 0}
`,
			},
			wantErr: "/provinces/0/questions/0",
		},
		{
			name: "wallet address",
			files: map[string]string{
				"a.yaml": `
wallets:
  - {id: metamask, name: MetaMask, address: "abc"}
guide:
  default: {en: hello}
crops:
  - {id: 1, name: A, rarity: Alamat, preservation_value: 1}
`,
			},
			wantErr: "at /wallets/0/address: pattern validation failed",
		},
		{
			name: "malformed yaml",
			files: map[string]string{
				"a.yaml": "crops: [",
			},
			wantErr: ErrMsgParseContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{}
			for name, body := range tt.files {
				fsys[name] = &fstest.MapFile{Data: []byte(body)}
			}

			_, err := LoadFS(fsys)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
