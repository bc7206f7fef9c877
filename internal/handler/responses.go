package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListResponse wraps a collection with its size
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

// response bodies are rendered into pooled buffers so a failed render never
// leaves a half-written body behind
var bodyBuffers = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// large workbooks are not kept around
const maxPooledBuffer = 64 * 1024

// writeRendered renders the body first and only then commits the status line
func writeRendered(w http.ResponseWriter, status int, contentType string, render func(*bytes.Buffer) error) error {
	buf := bodyBuffers.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			bodyBuffers.Put(buf)
		}
	}()

	if err := render(buf); err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
	return nil
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	err := writeRendered(w, status, "application/json", func(buf *bytes.Buffer) error {
		return json.NewEncoder(buf).Encode(payload)
	})
	if err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and maps it to a status and user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Unknown errors become a generic 500 so internals never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCropNotFound):
		return http.StatusNotFound, ErrMsgCropNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFound
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, ErrMsgTransactionNotFound
	case errors.Is(err, domain.ErrProvinceNotFound):
		return http.StatusNotFound, ErrMsgProvinceNotFound
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFound
	case errors.Is(err, domain.ErrGuideEntryNotFound):
		return http.StatusNotFound, ErrMsgGuideEntryNotFound

	case errors.Is(err, domain.ErrCropAlreadyAdopted):
		return http.StatusConflict, ErrMsgCropAlreadyAdopted
	case errors.Is(err, domain.ErrCheckoutAlreadyActive):
		return http.StatusConflict, ErrMsgCheckoutAlreadyActive
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransition
	case errors.Is(err, domain.ErrQuestCompleted):
		return http.StatusConflict, ErrMsgQuestCompleted

	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusBadRequest, ErrMsgInvalidPaymentMethod
	case errors.Is(err, domain.ErrWalletRequired):
		return http.StatusBadRequest, ErrMsgWalletRequired
	case errors.Is(err, domain.ErrUnknownWallet):
		return http.StatusBadRequest, ErrMsgUnknownWallet
	case errors.Is(err, domain.ErrUnknownSection):
		return http.StatusBadRequest, ErrMsgUnknownSection
	case errors.Is(err, domain.ErrUnknownPlatform):
		return http.StatusBadRequest, ErrMsgUnknownPlatform
	case errors.Is(err, domain.ErrInvalidAnswer):
		return http.StatusBadRequest, ErrMsgInvalidAnswer
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary

	case errors.Is(err, domain.ErrDatabase):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
