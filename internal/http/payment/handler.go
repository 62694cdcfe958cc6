package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/CharlesOsang017/keja-hook/internal/http/middleware"
	"github.com/CharlesOsang017/keja-hook/internal/mpesa"
	"github.com/CharlesOsang017/keja-hook/internal/partnership"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

type Handler struct {
	svc        *payment.Service
	reconciler *payment.Reconciler
	validate   *validator.Validate
}

func NewHandler(svc *payment.Service, reconciler *payment.Reconciler) *Handler {
	return &Handler{
		svc:        svc,
		reconciler: reconciler,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/rent", h.initiateRent)
	r.Post("/purchase", h.initiatePurchase)
	r.Post("/tokens", h.initiateTokenPurchase)
	r.Post("/invest", h.initiateInvestment)
	r.Post("/upgrade", h.initiateMembershipUpgrade)
	r.Post("/partnership", h.initiatePartnership)
	r.Get("/{transactionID}", h.verify)
}

// Callback receives the gateway's settlement callback. It is mounted
// outside the authenticated routes; the gateway does not carry our tokens.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	var envelope mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		http.Error(w, "malformed callback", http.StatusBadRequest)
		return
	}

	res, err := envelope.Result()
	if err != nil {
		http.Error(w, "malformed callback", http.StatusBadRequest)
		return
	}

	if err := h.reconciler.HandleCallback(r.Context(), res); err != nil {
		// The gateway retries on non-200 responses. Settlement errors are
		// handled by the repair job, so acknowledge regardless.
		slog.Error("processing gateway callback", "transaction_id", res.TransactionID, "error", err)
	}

	writeJSON(w, http.StatusOK, callbackAck{ResultCode: 0, ResultDesc: "Accepted"})
}

type initiateRentRequest struct {
	LeaseID string `json:"lease_id" validate:"required,uuid"`
	Phone   string `json:"phone" validate:"required"`
}

func (h *Handler) initiateRent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiateRentRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiateRent(r.Context(), userID, uuid.MustParse(req.LeaseID), req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

type initiatePurchaseRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Phone      string `json:"phone" validate:"required"`
}

func (h *Handler) initiatePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiatePurchaseRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiatePurchase(r.Context(), userID, uuid.MustParse(req.PropertyID), req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

type initiateTokenPurchaseRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Tokens     int64  `json:"tokens" validate:"required,gt=0"`
	Phone      string `json:"phone" validate:"required"`
}

func (h *Handler) initiateTokenPurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiateTokenPurchaseRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiateTokenPurchase(r.Context(), userID, uuid.MustParse(req.PropertyID), req.Tokens, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

type initiateInvestmentRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Phone      string `json:"phone" validate:"required"`
}

func (h *Handler) initiateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiateInvestmentRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiateInvestment(r.Context(), userID, uuid.MustParse(req.PropertyID), req.Amount, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

type initiateMembershipRequest struct {
	Plan  string `json:"plan" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func (h *Handler) initiateMembershipUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiateMembershipRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiateMembershipUpgrade(r.Context(), userID, req.Plan, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

type initiatePartnershipRequest struct {
	Type  string `json:"type" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func (h *Handler) initiatePartnership(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	role, _ := middleware.Role(r.Context())

	var req initiatePartnershipRequest
	if err := h.decode(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txID, err := h.svc.InitiatePartnership(r.Context(), userID, role, partnership.Type(req.Type), req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toInitiatedResponse(txID))
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		http.Error(w, "missing transaction id", http.StatusBadRequest)
		return
	}

	res, err := h.reconciler.Verify(r.Context(), transactionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toVerifyResponse(res))
}

func (h *Handler) decode(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return err
	}

	return h.validate.Struct(req)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr   *payment.ValidationError
		preconditionErr *payment.PreconditionError
		gatewayErr      *payment.GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Reason, http.StatusBadRequest)
	case errors.As(err, &preconditionErr):
		http.Error(w, preconditionErr.Reason, http.StatusUnprocessableEntity)
	case errors.Is(err, payment.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case isNotFound(err):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.As(err, &gatewayErr):
		http.Error(w, "payment gateway unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
