package lease

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/http/middleware"
	"github.com/CharlesOsang017/keja-hook/internal/lease"
)

type Handler struct {
	svc *lease.Service
}

func NewHandler(svc *lease.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}/payments", h.payments)
}

type paymentRecordResponse struct {
	ID            uuid.UUID  `json:"id"`
	TransactionID string     `json:"transaction_id"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// payments returns the rent payment history of one lease. Only the lease's
// tenant or landlord may read it.
func (h *Handler) payments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	leaseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid lease id", http.StatusBadRequest)
		return
	}

	l, err := h.svc.Get(r.Context(), leaseID)
	if err != nil {
		if errors.Is(err, lease.ErrNotFound) {
			http.Error(w, "lease not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if l.TenantID != userID && l.LandlordID != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	records, err := h.svc.Payments(r.Context(), leaseID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]paymentRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = paymentRecordResponse{
			ID:            rec.ID,
			TransactionID: rec.TransactionID,
			Amount:        rec.Amount,
			Status:        string(rec.Status),
			FailureReason: rec.FailureReason,
			PaidAt:        rec.PaidAt,
			CreatedAt:     rec.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
