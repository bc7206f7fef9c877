package handler

import (
	"net/http"
)

// AskRequest is a question for the tour guide
type AskRequest struct {
	Query    string `json:"query" validate:"required,max=500"`
	Language string `json:"language" validate:"omitempty,max=10"`
}

// HandleAsk answers a free-text question
// @Summary Ask the guide
// @Tags guide
// @Accept json
// @Produce json
// @Param request body AskRequest true "Question"
// @Success 200 {object} domain.GuideAnswer
// @Failure 400 {object} ValidationErrorResponse
// @Security ApiKeyAuth
// @Router /guide/ask [post]
func (h *Handlers) HandleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Ask guide"); err != nil {
		return
	}
	answer, err := h.guide.Ask(r.Context(), req.Query, req.Language)
	if err != nil {
		respondServiceError(w, r, "Ask guide", err)
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

// HandleCropGuide returns the guide's entry for a catalog crop
// @Summary Crop guide entry
// @Tags guide
// @Produce json
// @Param id path int true "Crop id"
// @Param language query string false "en or fil" default(en)
// @Success 200 {object} domain.GuideAnswer
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /guide/crops/{id} [get]
func (h *Handlers) HandleCropGuide(w http.ResponseWriter, r *http.Request) {
	id, ok := cropIDParam(r, w)
	if !ok {
		return
	}
	crop, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Crop guide", err)
		return
	}
	answer, err := h.guide.CropInfo(r.Context(), crop.Name, GetOptionalQueryParam(r, QueryParamLanguage, ""))
	if err != nil {
		respondServiceError(w, r, "Crop guide", err)
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

// HandleHighlights returns the featured museum highlights
// @Summary Highlights
// @Tags guide
// @Produce json
// @Success 200 {object} ListResponse[domain.Highlight]
// @Security ApiKeyAuth
// @Router /highlights [get]
func (h *Handlers) HandleHighlights(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newList(h.guide.Highlights()))
}
