package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AnswerRequest answers the current question of a province
type AnswerRequest struct {
	UserID string `json:"user_id" validate:"required,max=100,user_id"`
	Option *int   `json:"option" validate:"required,gte=0,lte=3"`
}

// HandleListQuests lists every province with the visitor's progress
// @Summary List provinces
// @Tags quests
// @Produce json
// @Param user query string true "Visitor id"
// @Success 200 {object} ListResponse[domain.ProvinceView]
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /quests [get]
func (h *Handlers) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userQueryParam(r, w)
	if !ok {
		return
	}
	views, err := h.quests.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List quests", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(views))
}

// HandleCurrentQuestion returns the next unanswered question of a province
// @Summary Current question
// @Tags quests
// @Produce json
// @Param provinceID path string true "Province id"
// @Param user query string true "Visitor id"
// @Success 200 {object} domain.CurrentQuestion
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Province already completed"
// @Security ApiKeyAuth
// @Router /quests/{provinceID} [get]
func (h *Handlers) HandleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := userQueryParam(r, w)
	if !ok {
		return
	}
	q, err := h.quests.Current(r.Context(), userID, chi.URLParam(r, "provinceID"))
	if err != nil {
		respondServiceError(w, r, "Current question", err)
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// HandleAnswer scores an answer and applies its rewards
// @Summary Answer question
// @Description A wrong answer is reported in the result and leaves progress unchanged
// @Tags quests
// @Accept json
// @Produce json
// @Param provinceID path string true "Province id"
// @Param request body AnswerRequest true "Answer"
// @Success 200 {object} domain.AnswerResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /quests/{provinceID}/answer [post]
func (h *Handlers) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Answer question"); err != nil {
		return
	}
	result, err := h.quests.Answer(r.Context(), req.UserID, chi.URLParam(r, "provinceID"), *req.Option)
	if err != nil {
		respondServiceError(w, r, "Answer question", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
