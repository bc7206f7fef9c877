package handler

import (
	"net/http"
)

// HandleCommunityStats returns the live community counters
// @Summary Community stats
// @Tags community
// @Produce json
// @Success 200 {object} domain.CommunityStats
// @Security ApiKeyAuth
// @Router /community/stats [get]
func (h *Handlers) HandleCommunityStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.community.Stats(r.Context()))
}

// HandleActivityFeed returns recent museum activity
// @Summary Activity feed
// @Tags community
// @Produce json
// @Param limit query int false "Max entries" default(20)
// @Success 200 {object} ListResponse[domain.Activity]
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /community/activity [get]
func (h *Handlers) HandleActivityFeed(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r, w, DefaultFeedLimit, MaxFeedLimit)
	if !ok {
		return
	}
	feed, err := h.activity.Feed(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Activity feed", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(feed))
}

// HandleLeaderboard ranks visitors by tokens
// @Summary Leaderboard
// @Tags community
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {object} ListResponse[domain.LeaderboardEntry]
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r, w, DefaultLeaderboardLimit, MaxLeaderboardLimit)
	if !ok {
		return
	}
	entries, err := h.community.Leaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(entries))
}
