// Package notify posts settlement notices to the platform's notification
// webhook. Delivery is best-effort with bounded retries; reconciliation
// never waits on it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/CharlesOsang017/keja-hook/internal/payment"
)

const maxAttempts = 3

type Client struct {
	url     string
	client  *http.Client
	printer *message.Printer
}

func New(webhookURL string) *Client {
	return &Client{
		url:     webhookURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		printer: message.NewPrinter(language.English),
	}
}

type notice struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	Purpose       string `json:"purpose"`
	Status        string `json:"status"`
	Message       string `json:"message"`
	Receipt       string `json:"receipt,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// PaymentSettled sends a notice for a settled transaction. Errors are
// logged after the last attempt; the caller is never blocked on outcome.
func (c *Client) PaymentSettled(ctx context.Context, tx *payment.Transaction) {
	if c.url == "" {
		return
	}

	n := notice{
		UserID:        tx.OwnerID.String(),
		TransactionID: tx.TransactionID,
		Purpose:       string(tx.Purpose),
		Status:        string(tx.Status),
	}

	amount := c.printer.Sprintf("KES %v", number.Decimal(tx.Amount))

	switch tx.Status {
	case payment.StatusCompleted:
		n.Message = fmt.Sprintf("Your %s payment of %s was received.", tx.Purpose, amount)
		if tx.ReceiptNumber != nil {
			n.Receipt = *tx.ReceiptNumber
		}
	case payment.StatusFailed:
		n.Message = fmt.Sprintf("Your %s payment of %s failed.", tx.Purpose, amount)
		if tx.FailureReason != nil {
			n.Reason = *tx.FailureReason
		}
	default:
		return
	}

	body, err := json.Marshal(n)
	if err != nil {
		slog.Error("encoding notification", "transaction_id", tx.TransactionID, "error", err)
		return
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = c.send(ctx, body); lastErr == nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
		}
	}

	slog.Error("notification delivery failed",
		"transaction_id", tx.TransactionID, "attempts", maxAttempts, "error", lastErr)
}

func (c *Client) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
