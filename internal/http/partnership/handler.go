package partnership

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/partnership"
)

type Handler struct {
	svc *partnership.Service
}

func NewHandler(svc *partnership.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.listActive)
}

type partnershipResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.svc.ListActive(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]partnershipResponse, len(active))
	for i, p := range active {
		resp[i] = partnershipResponse{
			ID:        p.ID,
			Type:      string(p.Type),
			Name:      p.Name,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
