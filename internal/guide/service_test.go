package guide

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	c, err := content.Load()
	require.NoError(t, err)
	return NewService(c.Guide, c.Highlights)
}

func TestAsk(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name         string
		query        string
		language     string
		wantPrefix   string
		wantCategory string
		wantLanguage string
	}{
		{"key in query", "Tell me about Tinawon Rice", "en", "Tinawon Rice is an heirloom", CategoryCrop, "en"},
		{"first word in key", "rice varieties?", "en", "Tinawon Rice is an heirloom", CategoryCrop, "en"},
		{"later entry", "what is siling labuyo", "en", "Siling Labuyo is a very spicy", CategoryCrop, "en"},
		{"ritual", "Traditional farming in Ifugao", "en", "Traditional farming methods", CategoryRitual, "en"},
		{"general", "museum navigation please", "en", "You can explore the museum", CategoryGeneral, "en"},
		{"filipino", "tinawon rice", "fil", "Ang Tinawon Rice", CategoryCrop, "fil"},
		{"unknown language", "tinawon rice", "jp", "Tinawon Rice is an heirloom", CategoryCrop, "en"},
		{"no language", "nft adoption", "", "To adopt an NFT", CategoryGeneral, "en"},
		{"default answer", "where is the cafeteria", "en", "Thank you for your question!", CategoryGeneral, "en"},
		{"default answer filipino", "where is the cafeteria", "fil", "Salamat sa inyong tanong!", CategoryGeneral, "fil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ans, err := svc.Ask(context.Background(), tt.query, tt.language)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ans.Answer, tt.wantPrefix), "got %q", ans.Answer)
			assert.Equal(t, tt.wantCategory, ans.Category)
			assert.Equal(t, tt.wantLanguage, ans.Language)
			assert.Equal(t, tt.query, ans.Query)
		})
	}
}

func TestAsk_EmptyQuery(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Ask(context.Background(), "   ", "en")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCropInfo(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ans, err := svc.CropInfo(ctx, "Tinawon Rice", "en")
	require.NoError(t, err)
	assert.Equal(t, CategoryCrop, ans.Category)
	assert.Contains(t, ans.Answer, "Ifugao")

	ans, err = svc.CropInfo(ctx, "Siling Labuyo", "fil")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ans.Answer, "Ang Siling Labuyo"))

	_, err = svc.CropInfo(ctx, "Kapeng Barako", "en")
	assert.ErrorIs(t, err, domain.ErrGuideEntryNotFound)
}

func TestHighlights(t *testing.T) {
	svc := newTestService(t)

	h := svc.Highlights()
	require.Len(t, h, 3)
	assert.Equal(t, "Banaue Rice Terraces", h[0].Title)

	h[0].Title = "changed"
	assert.Equal(t, "Banaue Rice Terraces", svc.Highlights()[0].Title)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryCrop, Categorize("peking corn"))
	assert.Equal(t, CategoryRitual, Categorize("harvest ritual"))
	assert.Equal(t, CategoryGeneral, Categorize("museum navigation"))
}
