package membership

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/http/middleware"
	"github.com/CharlesOsang017/keja-hook/internal/membership"
)

type Handler struct {
	svc *membership.Service
}

func NewHandler(svc *membership.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Get("/plans", h.plans)
}

type membershipResponse struct {
	ID            uuid.UUID `json:"id"`
	Plan          string    `json:"plan"`
	PaymentStatus string    `json:"payment_status"`
	Active        bool      `json:"active"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Features      []string  `json:"features"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	m, err := h.svc.ActiveForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, membership.ErrNotFound) {
			http.Error(w, "no active membership", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := membershipResponse{
		ID:            m.ID,
		Plan:          m.Plan,
		PaymentStatus: string(m.PaymentStatus),
		Active:        m.IsActive,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Features:      m.Features,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type planResponse struct {
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	TermDays int      `json:"term_days"`
	Features []string `json:"features"`
}

func (h *Handler) plans(w http.ResponseWriter, _ *http.Request) {
	resp := make([]planResponse, len(membership.Plans))
	for i, p := range membership.Plans {
		resp[i] = planResponse{
			Name:     p.Name,
			Price:    p.Price,
			TermDays: int(p.Term.Hours() / 24),
			Features: p.Features,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
