// Package mpesa is the outbound adapter for the Daraja STK push API. It is
// stateless apart from a cached OAuth token and performs no retries; lost
// callbacks are recovered by the poll sweep, not here.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

const (
	timestampLayout = "20060102150405"
	// The gateway rejects account references longer than this.
	maxReferenceLen = 12
)

// queryInFlightCode is the error code the status query returns while the
// customer is still being prompted on their device.
const queryInFlightCode = "500.001.1001"

type Config struct {
	BaseURL        string
	ShortCode      string
	PassKey        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	Timeout        time.Duration
}

type Client struct {
	cfg    Config
	client *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// password derives the request password from shortcode, passkey and
// timestamp, base64 encoded as the gateway requires.
func (c *Client) password(t time.Time) (password, timestamp string) {
	timestamp = t.Format(timestampLayout)
	raw := c.cfg.ShortCode + c.cfg.PassKey + timestamp
	password = base64.StdEncoding.EncodeToString([]byte(raw))

	return password, timestamp
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	url := c.cfg.BaseURL + "/oauth/v1/generate?grant_type=client_credentials"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.cfg.ConsumerKey + ":" + c.cfg.ConsumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	ttl := 50 * time.Minute

	if secs, err := strconv.Atoi(tr.ExpiresIn); err == nil && secs > 60 {
		ttl = time.Duration(secs-60) * time.Second
	}

	c.token = tr.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)

	return c.token, nil
}

type pushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type pushResponse struct {
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// RequestPush asks the gateway to prompt the customer's device for payment.
// The returned CheckoutRequestID identifies the transaction from here on.
// A non-nil error carries no guarantee the gateway will not still fire a
// late callback.
func (c *Client) RequestPush(ctx context.Context, phone string, amount int64, reference, description string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", &payment.GatewayError{Op: "push", Err: err}
	}

	password, timestamp := c.password(time.Now())

	if len(reference) > maxReferenceLen {
		reference = reference[:maxReferenceLen]
	}

	body := pushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  reference,
		TransactionDesc:   description,
	}

	var pr pushResponse
	if err := c.post(ctx, "/mpesa/stkpush/v1/processrequest", token, body, &pr); err != nil {
		return "", &payment.GatewayError{Op: "push", Err: err}
	}

	if pr.ErrorCode != "" {
		return "", &payment.GatewayError{Op: "push", Err: fmt.Errorf("gateway error %s: %s", pr.ErrorCode, pr.ErrorMessage)}
	}

	if pr.ResponseCode != "0" {
		return "", &payment.GatewayError{Op: "push", Err: fmt.Errorf("gateway rejected push: %s", pr.ResponseDescription)}
	}

	return pr.CheckoutRequestID, nil
}

type queryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type queryResponse struct {
	ResponseCode string `json:"ResponseCode"`
	ResultCode   string `json:"ResultCode"`
	ResultDesc   string `json:"ResultDesc"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// QueryStatus asks the gateway for the current state of a push it accepted
// earlier. An in-flight transaction is reported as pending, not as an error.
func (c *Client) QueryStatus(ctx context.Context, transactionID string) (payment.StatusResult, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return payment.StatusResult{}, &payment.GatewayError{Op: "query", Err: err}
	}

	password, timestamp := c.password(time.Now())

	body := queryRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         timestamp,
		CheckoutRequestID: transactionID,
	}

	var qr queryResponse
	if err := c.post(ctx, "/mpesa/stkpushquery/v1/query", token, body, &qr); err != nil {
		return payment.StatusResult{}, &payment.GatewayError{Op: "query", Err: err}
	}

	if qr.ErrorCode == queryInFlightCode {
		return payment.StatusResult{Pending: true, ResultDesc: qr.ErrorMessage}, nil
	}

	if qr.ErrorCode != "" {
		return payment.StatusResult{}, &payment.GatewayError{Op: "query", Err: fmt.Errorf("gateway error %s: %s", qr.ErrorCode, qr.ErrorMessage)}
	}

	code, err := strconv.Atoi(qr.ResultCode)
	if err != nil {
		return payment.StatusResult{}, &payment.GatewayError{Op: "query", Err: fmt.Errorf("unparseable result code %q", qr.ResultCode)}
	}

	return payment.StatusResult{ResultCode: code, ResultDesc: qr.ResultDesc}, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	// The gateway delivers structured errors, including the still-processing
	// query state, with a 5xx status. Decode the body before treating the
	// status as a transport failure.
	if err := json.Unmarshal(raw, out); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}

		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
