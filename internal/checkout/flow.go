// Package checkout orchestrates the service-request and payment flow:
// submit requirements, open the external payment widget, verify the payment,
// and navigate to the success destination. The sequence and its failure
// points are strict: session before order, order before widget, widget
// before verification.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// State is the flow's position in the checkout lifecycle.
type State string

const (
	StateIdle             State = "idle"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StatePaymentPending   State = "payment_pending"
	StatePaymentVerifying State = "payment_verifying"
	StatePaymentComplete  State = "payment_complete"
	StateClosed           State = "closed"
)

// minMessageLength is the shortest acceptable requirements message.
const minMessageLength = 10

// paymentMethod is the method reported to the verify endpoint.
const paymentMethod = "razorpay"

var (
	// ErrLoginRequired aborts a payment attempt with no live session. The
	// flow has already navigated to the login destination when it returns
	// this.
	ErrLoginRequired = errors.New("login required")

	// ErrWidgetLoad is the distinct failure for the payment script never
	// becoming available. Not a generic network error.
	ErrWidgetLoad = errors.New("payment SDK failed to load")

	// ErrGatewayNotConfigured means the backend reported the payment
	// gateway is not set up; the widget is never opened in that case.
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
)

// Gateway is the backend surface the flow depends on.
type Gateway interface {
	SubmitServiceRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error)
	CreateOrder(ctx context.Context, token, planSlug, idempotencyKey string) (models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, token string, verification models.PaymentVerification) error
}

// SessionSource supplies the live session. The flow re-reads it immediately
// before every privileged call instead of holding a token.
type SessionSource interface {
	CurrentSession(ctx context.Context) *models.Session
}

// Navigator performs in-site navigation (login redirect, success page).
type Navigator interface {
	NavigateTo(path string)
}

// Prefill is the customer data handed to the widget and the form.
type Prefill struct {
	Name  string
	Email string
	Phone string
}

// WidgetResult is the widget's success callback payload.
type WidgetResult struct {
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

// WidgetCallbacks are the three widget outcomes the flow handles.
type WidgetCallbacks struct {
	OnSuccess func(WidgetResult)
	OnFailure func(description string)
	OnDismiss func()
}

// WidgetOptions parameterize one widget invocation.
type WidgetOptions struct {
	KeyID    string
	Amount   int
	Currency string
	OrderID  string
	Prefill  Prefill
}

// Widget abstracts the external payment script. Load covers the script
// becoming available; Open hands control to the third party until one of
// the callbacks fires.
type Widget interface {
	Load(ctx context.Context) error
	Open(ctx context.Context, opts WidgetOptions, callbacks WidgetCallbacks) error
}

// Config fixes the flow's destinations and originating context.
type Config struct {
	// Plan is the originating plan; the zero value means a plain contact
	// submission with no payment step.
	Plan models.Plan

	// ReturnPath is the originating page, carried as the login redirect's
	// `next` parameter.
	ReturnPath string

	LoginPath          string
	SuccessPath        string
	ContactFallbackURL string
}

// FormInput is one service-request submission.
type FormInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Flow is a single customer's pass through the request/checkout sequence.
// It follows the browser's single-event-loop model: one user drives it at a
// time, and the mutex only keeps state reads consistent.
type Flow struct {
	gw       Gateway
	sessions SessionSource
	widget   Widget
	nav      Navigator
	cfg      Config

	now    func() time.Time
	newKey func(time.Time) string

	mu         sync.Mutex
	state      State
	request    models.ServiceRequest
	order      models.PaymentOrder
	submitErr  string
	paymentErr string
}

// New creates a flow in StateIdle.
func New(gw Gateway, sessions SessionSource, widget Widget, nav Navigator, cfg Config) *Flow {
	return &Flow{
		gw:       gw,
		sessions: sessions,
		widget:   widget,
		nav:      nav,
		cfg:      cfg,
		now:      time.Now,
		newKey:   gateway.NewIdempotencyKey,
		state:    StateIdle,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Plan returns the originating plan context. It survives submission so the
// optional payment step still knows what is being bought.
func (f *Flow) Plan() models.Plan {
	return f.cfg.Plan
}

// SubmitError is the inline message from the last failed submission.
func (f *Flow) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// PaymentError is the last widget or verification failure, verbatim.
func (f *Flow) PaymentError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paymentErr
}

// ContactFallbackURL is the direct-messaging escape hatch that bypasses the
// flow entirely; it stays available regardless of state.
func (f *Flow) ContactFallbackURL() string {
	return f.cfg.ContactFallbackURL
}

// Prefill returns known customer data from the live session, or a zero
// Prefill for anonymous visitors.
func (f *Flow) Prefill(ctx context.Context) Prefill {
	sess := f.sessions.CurrentSession(ctx)
	if sess == nil {
		return Prefill{}
	}
	return Prefill{Name: sess.User.DisplayName(), Email: sess.User.Email}
}

// OffersPayment reports whether the confirmed submission should show a
// "proceed to payment" action.
func (f *Flow) OffersPayment() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateSubmitted && f.cfg.Plan.IsPaid()
}

// Submit validates the form and creates the service request. On failure the
// flow stays in StateIdle with the error recorded for inline display.
func (f *Flow) Submit(ctx context.Context, in FormInput) error {
	if state := f.State(); state != StateIdle {
		return fmt.Errorf("cannot submit in state %q", state)
	}
	if err := validate(in); err != nil {
		f.setSubmitErr(err.Error())
		return err
	}

	f.setState(StateSubmitting)

	req := models.ServiceRequest{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		PlanSlug: f.cfg.Plan.Slug,
		Message:  strings.TrimSpace(in.Message),
	}

	created, err := f.gw.SubmitServiceRequest(ctx, req)
	if err != nil {
		log.Printf("[checkout] service request failed: %v", err)
		f.mu.Lock()
		f.state = StateIdle
		f.submitErr = err.Error()
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.state = StateSubmitted
	f.request = created
	f.submitErr = ""
	f.mu.Unlock()
	return nil
}

// ProceedToPayment runs the payment leg for a paid plan: session check,
// widget load, order creation, then widget open. Each requirement that
// fails returns the flow to StateSubmitted so payment stays retryable.
func (f *Flow) ProceedToPayment(ctx context.Context) error {
	if state := f.State(); state != StateSubmitted {
		return fmt.Errorf("cannot start payment in state %q", state)
	}
	if !f.cfg.Plan.IsPaid() {
		return fmt.Errorf("plan %q does not require payment", f.cfg.Plan.Slug)
	}

	f.setState(StatePaymentPending)

	// Session validity is confirmed per attempt; nothing below runs
	// without it, and no network call fires for anonymous users.
	sess := f.sessions.CurrentSession(ctx)
	if sess == nil {
		f.setState(StateSubmitted)
		f.nav.NavigateTo(f.loginRedirect())
		return ErrLoginRequired
	}

	if err := f.widget.Load(ctx); err != nil {
		log.Printf("[checkout] widget script load failed: %v", err)
		f.setState(StateSubmitted)
		return fmt.Errorf("%w: %v", ErrWidgetLoad, err)
	}

	key := f.newKey(f.now())
	order, err := f.gw.CreateOrder(ctx, sess.AccessToken, f.cfg.Plan.Slug, key)
	if err != nil {
		log.Printf("[checkout] order creation failed: %v", err)
		f.setState(StateSubmitted)
		return err
	}

	if !order.RazorpayConfigured {
		log.Printf("[checkout] payment gateway not configured for plan %s", f.cfg.Plan.Slug)
		f.setState(StateSubmitted)
		return ErrGatewayNotConfigured
	}

	f.mu.Lock()
	f.order = order
	f.paymentErr = ""
	f.state = StatePaymentVerifying
	f.mu.Unlock()

	opts := WidgetOptions{
		KeyID:    order.RazorpayKeyID,
		Amount:   order.Amount,
		Currency: order.Currency,
		OrderID:  order.RazorpayOrderID,
		Prefill: Prefill{
			Name:  f.request.Name,
			Email: f.request.Email,
			Phone: f.request.Phone,
		},
	}

	callbacks := WidgetCallbacks{
		OnSuccess: func(result WidgetResult) { f.completePayment(ctx, result) },
		OnFailure: f.failPayment,
		OnDismiss: f.dismissPayment,
	}

	if err := f.widget.Open(ctx, opts, callbacks); err != nil {
		log.Printf("[checkout] widget open failed: %v", err)
		f.setState(StateSubmitted)
		return err
	}
	return nil
}

// Close cancels the flow cleanly. Any unconfirmed order is the backend's to
// expire; nothing dangles here.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StatePaymentComplete {
		return
	}
	f.state = StateClosed
}

// completePayment verifies the widget's success callback and finishes the
// flow. Verification never runs before order creation completed: the order
// held here is the one the widget was opened with.
func (f *Flow) completePayment(ctx context.Context, result WidgetResult) {
	f.mu.Lock()
	order := f.order
	f.mu.Unlock()

	// Re-read the session rather than reusing the token from the pending
	// step; the widget may have been open for a long time.
	sess := f.sessions.CurrentSession(ctx)
	if sess == nil {
		log.Printf("[checkout] session expired during payment, verification aborted")
		f.mu.Lock()
		f.state = StateSubmitted
		f.paymentErr = "session expired, please sign in and retry"
		f.mu.Unlock()
		return
	}

	verification := models.PaymentVerification{
		RazorpayOrderID:   result.RazorpayOrderID,
		RazorpayPaymentID: result.RazorpayPaymentID,
		RazorpaySignature: result.RazorpaySignature,
		Amount:            order.Amount,
		Method:            paymentMethod,
	}

	if err := f.gw.VerifyPayment(ctx, sess.AccessToken, verification); err != nil {
		log.Printf("[checkout] payment verification failed: %v", err)
		f.mu.Lock()
		f.state = StateSubmitted
		f.paymentErr = err.Error()
		f.mu.Unlock()
		return
	}

	f.setState(StatePaymentComplete)
	f.nav.NavigateTo(f.cfg.SuccessPath)
}

// failPayment handles the widget's explicit payment.failed event. The flow
// returns to StateSubmitted — re-payable, with the form intact.
func (f *Flow) failPayment(description string) {
	log.Printf("[checkout] payment failed: %s", description)
	f.mu.Lock()
	f.state = StateSubmitted
	f.paymentErr = description
	f.mu.Unlock()
}

// dismissPayment handles the user closing the widget without an outcome.
func (f *Flow) dismissPayment() {
	f.mu.Lock()
	f.state = StateSubmitted
	f.mu.Unlock()
}

func (f *Flow) loginRedirect() string {
	next := f.cfg.ReturnPath
	if next == "" {
		next = "/"
	}
	return f.cfg.LoginPath + "?next=" + url.QueryEscape(next)
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) setSubmitErr(msg string) {
	f.mu.Lock()
	f.submitErr = msg
	f.mu.Unlock()
}

func validate(in FormInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(strings.TrimSpace(in.Message)) < minMessageLength {
		return fmt.Errorf("message must be at least %d characters", minMessageLength)
	}
	return nil
}
