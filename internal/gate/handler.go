package gate

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Handler exposes the scan and clarification endpoints to gate terminals.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// clarificationResponse is the pause payload of the two-call entrance
// protocol.
type clarificationResponse struct {
	Accion  string          `json:"accion"`
	Persona *PersonaDetalle `json:"persona"`
}

type rejectionResponse struct {
	Error    string   `json:"error"`
	Category Category `json:"category"`
}

// Scan handles POST /scans.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid scan payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	res, err := h.svc.Scan(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.ClarificationRequired() {
		h.writeJSON(w, http.StatusOK, clarificationResponse{
			Accion:  "clarification_required",
			Persona: res.Clarification,
		})
		return
	}
	h.writeJSON(w, http.StatusCreated, res.Entry)
}

// Clarify handles POST /scans/clarify.
func (h *Handler) Clarify(w http.ResponseWriter, r *http.Request) {
	var req ClarifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid clarify payload", "err", err)
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	res, err := h.svc.Clarify(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res.Entry)
}

// writeError maps engine outcomes to status codes: modeled rejections keep
// their category and full reason text, anything else is a server error.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		status := http.StatusForbidden
		switch rej.Category {
		case CategoryNotFound:
			status = http.StatusNotFound
		case CategoryInvalidClarification:
			status = http.StatusBadRequest
		}
		h.writeJSON(w, status, rejectionResponse{Error: rej.Error(), Category: rej.Category})
		return
	}
	if errors.Is(err, ErrEmptyCode) || errors.Is(err, ErrBadCheckpoint) {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.logger.Errorw("scan failed", "err", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registro fallido"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
