package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

func TestAPIClient_SendsKeyAndDecodesList(t *testing.T) {
	tc := setupTestContext(t)
	tc.Mux.HandleFunc("GET /api/v1/crops", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "rice", r.URL.Query().Get("search"))
		assert.Equal(t, "Alamat", r.URL.Query().Get("rarity"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"items": []domain.Crop{{ID: 1, Name: "Tinawon Rice", Rarity: domain.RarityAlamat}},
			"count": 1,
		})
	})

	crops, err := tc.APIClient.ListCrops(context.Background(), "rice", "Alamat")
	require.NoError(t, err)
	require.Len(t, crops, 1)
	assert.Equal(t, "Tinawon Rice", crops[0].Name)
}

func TestAPIClient_ErrorBody(t *testing.T) {
	tc := setupTestContext(t)
	tc.Mux.HandleFunc("GET /api/v1/crops/99", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Crop not found"})
	})

	_, err := tc.APIClient.GetCrop(context.Background(), 99)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Crop not found", apiErr.Message)
}

func TestAPIClient_ErrorWithoutBodyUsesStatusText(t *testing.T) {
	tc := setupTestContext(t)
	tc.Mux.HandleFunc("GET /api/v1/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := tc.APIClient.Leaderboard(context.Background(), 5)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusText(http.StatusUnauthorized), apiErr.Message)
}

func TestAPIClient_RetriesServerErrors(t *testing.T) {
	tc := setupTestContext(t)
	var calls atomic.Int32
	tc.Mux.HandleFunc("POST /api/v1/guide/ask", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, domain.GuideAnswer{Query: body["query"], Answer: "Tinawon is grown on the terraces."})
	})

	a, err := tc.APIClient.Ask(context.Background(), "what is tinawon", "en")
	require.NoError(t, err)
	assert.Equal(t, "what is tinawon", a.Query)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAPIClient_GivesUpAfterRetries(t *testing.T) {
	tc := setupTestContext(t)
	var calls atomic.Int32
	tc.Mux.HandleFunc("GET /api/v1/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := tc.APIClient.Leaderboard(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, int32(clientMaxRetries+1), calls.Load())
	assert.Equal(t, MsgAPIUnavailable, formatFriendlyError(err))
}

func TestAPIClient_Healthy(t *testing.T) {
	tc := setupTestContext(t)
	assert.False(t, tc.APIClient.Healthy(context.Background()))

	tc.Mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.True(t, tc.APIClient.Healthy(context.Background()))
}
