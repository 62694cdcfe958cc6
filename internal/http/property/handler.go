package property

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/http/middleware"
	"github.com/CharlesOsang017/keja-hook/internal/property"
)

type Handler struct {
	svc *property.Service
}

func NewHandler(svc *property.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Get("/assets/mine", h.myAssets)
}

type propertyResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Title              string               `json:"title"`
	Description        string               `json:"description"`
	Price              int64                `json:"price"`
	RentalPrice        int64                `json:"rental_price"`
	Location           string               `json:"location"`
	PropertyType       string               `json:"property_type"`
	Status             property.Status      `json:"status"`
	ListingType        property.ListingType `json:"listing_type"`
	IsTokenized        bool                 `json:"is_tokenized"`
	TotalTokens        int64                `json:"total_tokens"`
	AvailableTokens    int64                `json:"available_tokens"`
	TokenPrice         int64                `json:"token_price"`
	InvestmentCapacity int64                `json:"investment_capacity"`
	TotalInvested      int64                `json:"total_invested"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			http.Error(w, "property not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := propertyResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Price:              p.Price,
		RentalPrice:        p.RentalPrice,
		Location:           p.Location,
		PropertyType:       p.PropertyType,
		Status:             p.Status,
		ListingType:        p.ListingType,
		IsTokenized:        p.IsTokenized,
		TotalTokens:        p.TotalTokens,
		AvailableTokens:    p.AvailableTokens,
		TokenPrice:         p.TokenPrice,
		InvestmentCapacity: p.InvestmentCapacity(),
		TotalInvested:      p.TotalInvestedAmount,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type assetResponse struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"property_id"`
	TokenID         string    `json:"token_id"`
	PurchasePrice   int64     `json:"purchase_price"`
	PurchaseDate    time.Time `json:"purchase_date"`
	TransactionHash string    `json:"transaction_hash"`
}

func (h *Handler) myAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	assets, err := h.svc.ListAssetsForOwner(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]assetResponse, len(assets))
	for i, a := range assets {
		resp[i] = assetResponse{
			ID:              a.ID,
			PropertyID:      a.PropertyID,
			TokenID:         a.TokenID,
			PurchasePrice:   a.PurchasePrice,
			PurchaseDate:    a.PurchaseDate,
			TransactionHash: a.TransactionHash,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
