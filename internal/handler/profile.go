package handler

import (
	"net/http"
	"strings"

	"github.com/osse101/BinhiHeritage_Go/internal/share"
)

// ConnectWalletRequest picks a sample wallet
type ConnectWalletRequest struct {
	Provider string `json:"provider" validate:"required,max=40"`
}

// RecordVisitRequest stamps a museum section
type RecordVisitRequest struct {
	Section string `json:"section" validate:"required,museum_section"`
}

// HandleWallets lists the sample wallet providers
// @Summary Wallet providers
// @Tags profiles
// @Produce json
// @Success 200 {object} ListResponse[domain.WalletProvider]
// @Security ApiKeyAuth
// @Router /wallets [get]
func (h *Handlers) HandleWallets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newList(h.profiles.Wallets()))
}

// HandleGetProfile returns the dashboard summary, creating the visitor on first sight
// @Summary Visitor dashboard
// @Tags profiles
// @Produce json
// @Param userID path string true "Visitor id"
// @Success 200 {object} domain.ProfileSummary
// @Security ApiKeyAuth
// @Router /profiles/{userID} [get]
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	summary, err := h.profiles.Summary(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// HandleConnectWallet connects a sample wallet
// @Summary Connect wallet
// @Tags profiles
// @Accept json
// @Produce json
// @Param userID path string true "Visitor id"
// @Param request body ConnectWalletRequest true "Provider id"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{userID}/wallet [post]
func (h *Handlers) HandleConnectWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	var req ConnectWalletRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Connect wallet"); err != nil {
		return
	}
	p, err := h.profiles.ConnectWallet(r.Context(), userID, strings.ToLower(req.Provider))
	if err != nil {
		respondServiceError(w, r, "Connect wallet", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// HandleRecordVisit stamps a section in the passbook
// @Summary Record section visit
// @Tags profiles
// @Accept json
// @Produce json
// @Param userID path string true "Visitor id"
// @Param request body RecordVisitRequest true "Section"
// @Success 200 {object} domain.Passbook
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{userID}/visits [post]
func (h *Handlers) HandleRecordVisit(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	var req RecordVisitRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record visit"); err != nil {
		return
	}
	if _, err := h.profiles.RecordVisit(r.Context(), userID, strings.ToLower(req.Section)); err != nil {
		respondServiceError(w, r, "Record visit", err)
		return
	}
	pb, err := h.share.Passbook(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Record visit", err)
		return
	}
	respondJSON(w, http.StatusOK, pb)
}

// HandleBadges lists every badge with its unlock state
// @Summary Visitor badges
// @Tags profiles
// @Produce json
// @Param userID path string true "Visitor id"
// @Success 200 {object} ListResponse[domain.BadgeStatus]
// @Security ApiKeyAuth
// @Router /profiles/{userID}/badges [get]
func (h *Handlers) HandleBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	badges, err := h.profiles.Badges(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List badges", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(badges))
}

// HandlePassbook returns the visitor's passbook
// @Summary Passbook
// @Tags profiles
// @Produce json
// @Param userID path string true "Visitor id"
// @Success 200 {object} domain.Passbook
// @Security ApiKeyAuth
// @Router /profiles/{userID}/passbook [get]
func (h *Handlers) HandlePassbook(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	pb, err := h.share.Passbook(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get passbook", err)
		return
	}
	respondJSON(w, http.StatusOK, pb)
}

// HandleShare renders the share text for a platform
// @Summary Share journey
// @Tags profiles
// @Produce json
// @Param userID path string true "Visitor id"
// @Param platform query string false "twitter, facebook or instagram" default(twitter)
// @Success 200 {object} domain.SharePayload
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{userID}/share [get]
func (h *Handlers) HandleShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(r, w)
	if !ok {
		return
	}
	platform := strings.ToLower(GetOptionalQueryParam(r, QueryParamPlatform, share.PlatformTwitter))
	payload, err := h.share.Share(r.Context(), userID, platform)
	if err != nil {
		respondServiceError(w, r, "Share journey", err)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}
