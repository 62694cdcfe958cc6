package mpesa_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharlesOsang017/keja-hook/internal/mpesa"
	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *mpesa.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return mpesa.New(mpesa.Config{
		BaseURL:        srv.URL,
		ShortCode:      "174379",
		PassKey:        "test-passkey",
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		CallbackURL:    "https://example.com/api/v1/payments/callback",
	})
}

func serveToken(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
	assert.Equal(t, wantAuth, r.Header.Get("Authorization"))

	_ = json.NewEncoder(w).Encode(map[string]string{
		"access_token": "test-token",
		"expires_in":   "3599",
	})
}

func TestClient_RequestPush(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var pushed map[string]any

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/oauth/v1/generate":
				serveToken(t, w, r)
			case "/mpesa/stkpush/v1/processrequest":
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))

				_ = json.NewEncoder(w).Encode(map[string]string{
					"CheckoutRequestID":   "ws_CO_191220191020363925",
					"MerchantRequestID":   "29115-34620561-1",
					"ResponseCode":        "0",
					"ResponseDescription": "Success. Request accepted for processing",
				})
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		})

		txID, err := client.RequestPush(context.Background(),
			"254712345678", 15000, "TOKEN-abc-def", "Token purchase")

		require.NoError(t, err)
		assert.Equal(t, "ws_CO_191220191020363925", txID)

		assert.Equal(t, "174379", pushed["BusinessShortCode"])
		assert.Equal(t, "CustomerPayBillOnline", pushed["TransactionType"])
		assert.Equal(t, float64(15000), pushed["Amount"])
		assert.Equal(t, "254712345678", pushed["PhoneNumber"])

		// References longer than the gateway's limit are truncated.
		assert.Equal(t, "TOKEN-abc-de", pushed["AccountReference"])

		// Password is base64(shortcode + passkey + timestamp).
		password, ok := pushed["Password"].(string)
		require.True(t, ok)
		timestamp, ok := pushed["Timestamp"].(string)
		require.True(t, ok)

		raw, err := base64.StdEncoding.DecodeString(password)
		require.NoError(t, err)
		assert.Equal(t, "174379"+"test-passkey"+timestamp, string(raw))
	})

	t.Run("GatewayRejects", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/oauth/v1/generate" {
				serveToken(t, w, r)
				return
			}

			_ = json.NewEncoder(w).Encode(map[string]string{
				"ResponseCode":        "1",
				"ResponseDescription": "Invalid PhoneNumber",
			})
		})

		_, err := client.RequestPush(context.Background(),
			"254712345678", 100, "RENT-1", "Rent")

		var gatewayErr *payment.GatewayError
		require.ErrorAs(t, err, &gatewayErr)
	})

	t.Run("ServerError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/oauth/v1/generate" {
				serveToken(t, w, r)
				return
			}

			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.RequestPush(context.Background(),
			"254712345678", 100, "RENT-1", "Rent")

		var gatewayErr *payment.GatewayError
		require.ErrorAs(t, err, &gatewayErr)
	})
}

func TestClient_QueryStatus(t *testing.T) {
	type testCase struct {
		name        string
		status      int
		response    map[string]string
		wantPending bool
		wantCode    int
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "Completed",
			response: map[string]string{
				"ResponseCode": "0",
				"ResultCode":   "0",
				"ResultDesc":   "The service request is processed successfully.",
			},
			wantCode: 0,
		},
		{
			name: "CancelledByUser",
			response: map[string]string{
				"ResponseCode": "0",
				"ResultCode":   "1032",
				"ResultDesc":   "Request cancelled by user",
			},
			wantCode: 1032,
		},
		{
			// The gateway reports the still-processing state with a 500
			// status; it must surface as pending, not a transport error.
			name:   "StillInFlight",
			status: http.StatusInternalServerError,
			response: map[string]string{
				"errorCode":    "500.001.1001",
				"errorMessage": "The transaction is being processed",
			},
			wantPending: true,
		},
		{
			name: "OtherGatewayError",
			response: map[string]string{
				"errorCode":    "404.001.04",
				"errorMessage": "Invalid CheckoutRequestID",
			},
			wantErr: true,
		},
		{
			name:    "ServerErrorWithoutBody",
			status:  http.StatusServiceUnavailable,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/oauth/v1/generate" {
					serveToken(t, w, r)
					return
				}

				assert.Equal(t, "/mpesa/stkpushquery/v1/query", r.URL.Path)

				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}

				if tt.response != nil {
					_ = json.NewEncoder(w).Encode(tt.response)
				}
			})

			res, err := client.QueryStatus(context.Background(), "ws_CO_42")

			if tt.wantErr {
				var gatewayErr *payment.GatewayError
				require.ErrorAs(t, err, &gatewayErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPending, res.Pending)

			if !tt.wantPending {
				assert.Equal(t, tt.wantCode, res.ResultCode)
			}
		})
	}
}

func TestClient_TokenIsCached(t *testing.T) {
	tokenCalls := 0

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v1/generate":
			tokenCalls++
			serveToken(t, w, r)
		default:
			_ = json.NewEncoder(w).Encode(map[string]string{
				"ResponseCode":      "0",
				"CheckoutRequestID": "ws_CO_1",
			})
		}
	})

	for i := 0; i < 3; i++ {
		_, err := client.RequestPush(context.Background(),
			"254712345678", 100, "RENT-1", "Rent")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, tokenCalls)
}
