package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
)

// StartAdoptionRequest opens a checkout
type StartAdoptionRequest struct {
	UserID string `json:"user_id" validate:"required,max=100,user_id"`
	CropID int    `json:"crop_id" validate:"required,gt=0"`
}

// SelectPaymentRequest picks the payment method
type SelectPaymentRequest struct {
	Method         string `json:"method" validate:"required,payment_method"`
	WalletProvider string `json:"wallet_provider" validate:"max=40"`
}

// HandleStartAdoption opens a checkout session at the details step
// @Summary Start adoption checkout
// @Tags adoption
// @Accept json
// @Produce json
// @Param request body StartAdoptionRequest true "Visitor and crop"
// @Success 201 {object} domain.CheckoutSession
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Crop adopted or checkout already open"
// @Security ApiKeyAuth
// @Router /adoptions [post]
func (h *Handlers) HandleStartAdoption(w http.ResponseWriter, r *http.Request) {
	var req StartAdoptionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start adoption"); err != nil {
		return
	}
	session, err := h.adoption.Start(r.Context(), req.UserID, req.CropID)
	if err != nil {
		respondServiceError(w, r, "Start adoption", err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// HandleGetAdoption returns a checkout session
// @Summary Get checkout session
// @Tags adoption
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.CheckoutSession
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /adoptions/{id} [get]
func (h *Handlers) HandleGetAdoption(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Get checkout", h.adoption.Get)
}

// HandleProceed moves from details to payment
// @Summary Proceed to payment
// @Tags adoption
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.CheckoutSession
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /adoptions/{id}/proceed [post]
func (h *Handlers) HandleProceed(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Proceed checkout", h.adoption.Proceed)
}

// HandleSelectPayment moves from payment to confirmation
// @Summary Select payment method
// @Description Crypto payments need a wallet provider, which is also connected to the visitor
// @Tags adoption
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body SelectPaymentRequest true "Payment method"
// @Success 200 {object} domain.CheckoutSession
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /adoptions/{id}/payment [post]
func (h *Handlers) HandleSelectPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(r, w)
	if !ok {
		return
	}
	var req SelectPaymentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Select payment"); err != nil {
		return
	}
	method := domain.PaymentMethod(strings.ToLower(req.Method))
	session, err := h.adoption.SelectPayment(r.Context(), id, method, req.WalletProvider)
	if err != nil {
		respondServiceError(w, r, "Select payment", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// HandleBack returns to the previous step
// @Summary Go back one step
// @Tags adoption
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.CheckoutSession
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /adoptions/{id}/back [post]
func (h *Handlers) HandleBack(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Checkout back", h.adoption.Back)
}

// HandleConfirm starts processing. The session completes asynchronously;
// poll it or listen for adoption events on the stream.
// @Summary Confirm adoption
// @Tags adoption
// @Produce json
// @Param id path string true "Session id"
// @Success 202 {object} domain.CheckoutSession
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /adoptions/{id}/confirm [post]
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(r, w)
	if !ok {
		return
	}
	session, err := h.adoption.Confirm(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Confirm checkout", err)
		return
	}
	respondJSON(w, http.StatusAccepted, session)
}

// HandleCancel abandons the checkout
// @Summary Cancel checkout
// @Tags adoption
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} domain.CheckoutSession
// @Failure 409 {object} ErrorResponse "Already processing or finished"
// @Security ApiKeyAuth
// @Router /adoptions/{id}/cancel [post]
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "Cancel checkout", h.adoption.Cancel)
}

func (h *Handlers) step(w http.ResponseWriter, r *http.Request, op string,
	fn func(context.Context, uuid.UUID) (*domain.CheckoutSession, error)) {
	id, ok := sessionIDParam(r, w)
	if !ok {
		return
	}
	session, err := fn(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}
