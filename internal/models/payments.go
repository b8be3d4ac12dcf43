package models

import "time"

// PaymentOrder is the server-issued order for one checkout attempt.
// Amount is in minor units. Short-lived: superseded by a PaymentVerification
// once the widget reports success.
type PaymentOrder struct {
	Amount             int    `json:"amount"`
	Currency           string `json:"currency"`
	RazorpayKeyID      string `json:"razorpay_key_id"`
	RazorpayOrderID    string `json:"razorpay_order_id"`
	RazorpayConfigured bool   `json:"razorpay_configured"`
}

// PaymentVerification is submitted exactly once per successful widget
// callback. The backend is the sole arbiter of signature validity.
type PaymentVerification struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	Amount            int    `json:"amount"`
	Method            string `json:"method"`
}

// PaymentRecord is a settled payment as listed in the admin dashboard.
type PaymentRecord struct {
	ID              string    `json:"id,omitempty"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	PaymentID       string    `json:"payment_id"`
	Amount          int       `json:"amount"`
	Currency        string    `json:"currency"`
	Method          string    `json:"method"`
	Status          string    `json:"status"`
	PlanSlug        string    `json:"plan_slug,omitempty"`
	UserEmail       string    `json:"user_email,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
