package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// NewIdempotencyKey builds the per-attempt key sent with order creation:
// pay_{unix-ms}_{random}. The random suffix keeps two attempts within the
// same millisecond distinct, so a retried submit cannot double-charge.
func NewIdempotencyKey(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("pay_%d_%s", now.UnixMilli(), suffix)
}

// CreateOrder asks the backend for a payment order for the given plan. The
// caller owns the idempotency key so one checkout attempt maps to exactly
// one key.
func (c *Client) CreateOrder(ctx context.Context, token, planSlug, idempotencyKey string) (models.PaymentOrder, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", idempotencyKey)

	return DoJSON[models.PaymentOrder](ctx, c, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/payments/create-order",
		Body:     map[string]string{"plan_slug": planSlug},
		Token:    token,
		Header:   header,
	})
}

// VerifyPayment forwards the widget's success callback to the backend,
// which is the sole arbiter of signature validity.
func (c *Client) VerifyPayment(ctx context.Context, token string, verification models.PaymentVerification) error {
	_, err := c.Do(ctx, Request{
		Method:   http.MethodPost,
		Endpoint: "/api/payments/verify",
		Body:     verification,
		Token:    token,
	})
	return err
}
