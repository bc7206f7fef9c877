package handler

import (
	"net/http"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// CropResponse is a crop with its formatted preservation value
type CropResponse struct {
	domain.Crop
	ValueText   string `json:"value_text"`
	RarityLabel string `json:"rarity_label"`
}

func newCropResponse(c domain.Crop) CropResponse {
	return CropResponse{Crop: c, ValueText: c.FormattedValue(), RarityLabel: c.Rarity.English()}
}

// HandleListCrops lists the catalog
// @Summary List crops
// @Description Filter by free-text search, crop type and rarity (Filipino or English label)
// @Tags catalog
// @Produce json
// @Param search query string false "Name or type contains"
// @Param type query string false "Crop type, or all"
// @Param rarity query string false "Rarity, or all"
// @Success 200 {object} ListResponse[CropResponse]
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /crops [get]
func (h *Handlers) HandleListCrops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	crops, err := h.catalog.List(r.Context(), domain.CropFilter{
		Search: q.Get(QueryParamSearch),
		Type:   q.Get(QueryParamType),
		Rarity: q.Get(QueryParamRarity),
	})
	if err != nil {
		respondServiceError(w, r, "List crops", err)
		return
	}

	out := make([]CropResponse, 0, len(crops))
	for _, c := range crops {
		out = append(out, newCropResponse(c))
	}
	respondJSON(w, http.StatusOK, newList(out))
}

// HandleCropTypes lists the distinct crop types
// @Summary Crop types
// @Tags catalog
// @Produce json
// @Success 200 {object} ListResponse[string]
// @Security ApiKeyAuth
// @Router /crops/types [get]
func (h *Handlers) HandleCropTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalog.Types(r.Context())
	if err != nil {
		respondServiceError(w, r, "List crop types", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(types))
}

// HandleGetCrop returns one crop
// @Summary Get crop
// @Tags catalog
// @Produce json
// @Param id path int true "Crop id"
// @Success 200 {object} CropResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /crops/{id} [get]
func (h *Handlers) HandleGetCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := cropIDParam(r, w)
	if !ok {
		return
	}
	crop, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get crop", err)
		return
	}
	respondJSON(w, http.StatusOK, newCropResponse(*crop))
}
