package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func TestHandleAsk(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name         string
		body         interface{}
		wantCode     int
		wantCategory string
		wantLanguage string
	}{
		{"crop question", AskRequest{Query: "What is Tinawon Rice?"}, http.StatusOK, "crop", "en"},
		{"filipino", AskRequest{Query: "rice", Language: "fil"}, http.StatusOK, "crop", "fil"},
		{"unknown language falls back", AskRequest{Query: "rice", Language: "de"}, http.StatusOK, "crop", "en"},
		{"nothing matches", AskRequest{Query: "xyzzy"}, http.StatusOK, "general", "en"},
		{"empty query", AskRequest{}, http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/guide/ask", tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}
			answer := decode[domain.GuideAnswer](t, w)
			assert.Equal(t, tt.wantCategory, answer.Category)
			assert.Equal(t, tt.wantLanguage, answer.Language)
			assert.NotEmpty(t, answer.Answer)
		})
	}
}

func TestHandleCropGuide(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodGet, "/guide/crops/1?language=fil", nil)
	require.Equal(t, http.StatusOK, w.Code)
	answer := decode[domain.GuideAnswer](t, w)
	assert.Equal(t, "crop", answer.Category)
	assert.Contains(t, answer.Answer, "Tinawon")

	w = f.do(t, http.MethodGet, "/guide/crops/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGuideEntryNotFound)

	w = f.do(t, http.MethodGet, "/guide/crops/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgCropNotFound)
}

func TestHandleHighlights(t *testing.T) {
	f := newAPIFixture(t)
	w := f.do(t, http.MethodGet, "/highlights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, decode[ListResponse[domain.Highlight]](t, w).Count)
}
