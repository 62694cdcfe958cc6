package mpesa

import (
	"errors"
	"fmt"

	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

// CallbackEnvelope is the body the gateway posts to the callback URL.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem values are numbers or strings depending on the field, so the
// value stays untyped until flattened.
type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// Result flattens the callback into the settlement outcome the reconciler
// consumes. It fails only on structurally unusable payloads.
func (e *CallbackEnvelope) Result() (payment.GatewayResult, error) {
	cb := e.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return payment.GatewayResult{}, errors.New("callback has no CheckoutRequestID")
	}

	res := payment.GatewayResult{
		TransactionID: cb.CheckoutRequestID,
		ResultCode:    cb.ResultCode,
		ResultDesc:    cb.ResultDesc,
	}

	if cb.CallbackMetadata != nil {
		for _, item := range cb.CallbackMetadata.Item {
			switch item.Name {
			case "MpesaReceiptNumber":
				if s, ok := item.Value.(string); ok {
					res.Receipt = s
				}
			case "Amount":
				if f, ok := item.Value.(float64); ok {
					res.Amount = int64(f)
				}
			case "PhoneNumber":
				switch v := item.Value.(type) {
				case string:
					res.Phone = v
				case float64:
					res.Phone = fmt.Sprintf("%.0f", v)
				}
			}
		}
	}

	if cb.ResultCode == 0 && res.Receipt == "" {
		return payment.GatewayResult{}, errors.New("success callback has no receipt number")
	}

	return res, nil
}
