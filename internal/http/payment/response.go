package payment

import (
	"errors"

	"github.com/CharlesOsang017/keja-hook/internal/lease"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
	"github.com/CharlesOsang017/keja-hook/internal/property"
)

type callbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type initiatedResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

func toInitiatedResponse(transactionID string) initiatedResponse {
	return initiatedResponse{
		TransactionID: transactionID,
		Status:        string(payment.StatusPending),
		Message:       "Payment request sent. Enter your PIN on your phone to complete.",
	}
}

type verifyResponse struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Pending       bool    `json:"pending"`
	Receipt       *string `json:"receipt,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

func toVerifyResponse(res *payment.VerifyResult) verifyResponse {
	return verifyResponse{
		TransactionID: res.TransactionID,
		Status:        string(res.Status),
		Pending:       res.Pending,
		Receipt:       res.Receipt,
		FailureReason: res.FailureReason,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, lease.ErrNotFound) || errors.Is(err, property.ErrNotFound)
}
