package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/parlance-data/parlance-engine/pkg/translate"
)

// Translator runs the translation pipeline. Satisfied by
// *translate.Service; an interface here enables handler tests without a
// model client.
type Translator interface {
	Translate(ctx context.Context, req translate.Request) translate.Response
}

// TranslateHandler handles natural-language to SQL translation requests.
type TranslateHandler struct {
	service Translator
	logger  *zap.Logger
}

// NewTranslateHandler creates a new translate handler.
func NewTranslateHandler(service Translator, logger *zap.Logger) *TranslateHandler {
	return &TranslateHandler{service: service, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *TranslateHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/translate", h.Translate)
}

// Translate handles POST /translate.
//
// The response is always HTTP 200 with the outcome carried in the body's
// status field; callers branch on status, not on transport codes. This
// mirrors the upstream API contract and must not be "fixed" to use error
// statuses. GET and HEAD are tolerated as health/trigger pings.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Missing or null fields default to zero values; a malformed body is
	// treated like an empty request rather than a transport error.
	var req translate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("undecodable request body, using empty request", zap.Error(err))
		req = translate.Request{}
	}

	result := h.service.Translate(r.Context(), req)

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode translate response", zap.Error(err))
	}
}
