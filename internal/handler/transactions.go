package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/report"
	"github.com/osse101/BinhiHeritage_Go/internal/transparency"
)

// HandleListTransactions lists a visitor's transactions, newest first
// @Summary Visitor transactions
// @Tags transparency
// @Produce json
// @Param user query string true "Visitor id"
// @Success 200 {object} ListResponse[domain.TransactionView]
// @Security ApiKeyAuth
// @Router /transactions [get]
func (h *Handlers) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userQueryParam(r, w)
	if !ok {
		return
	}
	txs, err := h.transparency.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List transactions", err)
		return
	}
	respondJSON(w, http.StatusOK, newList(txs))
}

// HandleGetTransaction returns one transaction with its live confirmation status
// @Summary Get transaction
// @Tags transparency
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} domain.TransactionView
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{hash} [get]
func (h *Handlers) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transparency.Get(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		respondServiceError(w, r, "Get transaction", err)
		return
	}
	respondJSON(w, http.StatusOK, tx)
}

// HandleBreakdown returns where a donation goes
// @Summary Donation breakdown
// @Tags transparency
// @Produce json
// @Param hash path string true "Transaction hash"
// @Success 200 {object} domain.DonationBreakdown
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{hash}/breakdown [get]
func (h *Handlers) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.transparency.Breakdown(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		respondServiceError(w, r, "Donation breakdown", err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// HandleExportLedger downloads a visitor's ledger as an XLSX workbook
// @Summary Export ledger
// @Tags transparency
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param user query string true "Visitor id"
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/export [get]
func (h *Handlers) HandleExportLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := userQueryParam(r, w)
	if !ok {
		return
	}
	txs, err := h.transparency.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Export ledger", err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", LedgerFilename))
	err = writeRendered(w, http.StatusOK, report.ContentType, func(buf *bytes.Buffer) error {
		return report.WriteLedger(buf, txs, transparency.NewBreakdown)
	})
	if err != nil {
		w.Header().Del("Content-Disposition")
		logger.FromContext(r.Context()).Error(ErrMsgExportFailed, "error", err, "user_id", userID)
		respondError(w, http.StatusInternalServerError, ErrMsgExportFailed)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgExportComplete, "user_id", userID, "transactions", len(txs))
}
