package stubapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pixelcraftlabs/site-gateway/internal/admin"
	"github.com/pixelcraftlabs/site-gateway/internal/gateway"
	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

type staticSessions struct {
	sess *models.Session
}

func (s *staticSessions) CurrentSession(ctx context.Context) *models.Session {
	return s.sess
}

type nullNotifier struct{}

func (nullNotifier) Notify(admin.Level, string) {}

func adminSession() *models.Session {
	return &models.Session{AccessToken: "admin-token", ExpiresAt: time.Now().Add(time.Hour)}
}

func newStub(t *testing.T, opts Options) (*Server, *gateway.Client) {
	t.Helper()
	stub := New(opts)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	return stub, gateway.New(srv.URL)
}

func TestPublicReadsAreLive(t *testing.T) {
	_, client := newStub(t, Options{})

	plans := client.Plans(context.Background())
	if plans.Source != gateway.SourceLive {
		t.Fatalf("expected live source, got %q", plans.Source)
	}
	if len(plans.Data) == 0 {
		t.Fatal("expected seeded plans")
	}

	slug := gateway.FallbackBlogs()[0].Slug
	post, source, err := client.BlogBySlug(context.Background(), slug)
	if err != nil {
		t.Fatalf("BlogBySlug returned error: %v", err)
	}
	if source != gateway.SourceLive || post.Slug != slug {
		t.Fatalf("expected live post %q, got source=%q post=%+v", slug, source, post)
	}
}

func TestLikeToggles(t *testing.T) {
	_, client := newStub(t, Options{})
	slug := gateway.FallbackBlogs()[0].Slug

	liked, err := client.LikeBlog(context.Background(), slug, "anon-1")
	if err != nil {
		t.Fatalf("LikeBlog returned error: %v", err)
	}
	if !liked {
		t.Fatal("expected first like to set liked=true")
	}

	liked, err = client.LikeBlog(context.Background(), slug, "anon-1")
	if err != nil {
		t.Fatalf("LikeBlog returned error: %v", err)
	}
	if liked {
		t.Fatal("expected second like to unset")
	}
}

func TestServiceRequestValidationMessage(t *testing.T) {
	_, client := newStub(t, Options{})

	_, err := client.SubmitServiceRequest(context.Background(), models.ServiceRequest{Name: "A"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Error() != "name, email and message are required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateOrderIdempotency(t *testing.T) {
	_, client := newStub(t, Options{RazorpayConfigured: true})
	ctx := context.Background()

	first, err := client.CreateOrder(ctx, "tok-1", "growth", "pay_1_aaa")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	replay, err := client.CreateOrder(ctx, "tok-1", "growth", "pay_1_aaa")
	if err != nil {
		t.Fatalf("replay returned error: %v", err)
	}
	if replay.RazorpayOrderID != first.RazorpayOrderID {
		t.Fatal("expected the same order for a replayed idempotency key")
	}

	fresh, err := client.CreateOrder(ctx, "tok-1", "growth", "pay_1_bbb")
	if err != nil {
		t.Fatalf("fresh attempt returned error: %v", err)
	}
	if fresh.RazorpayOrderID == first.RazorpayOrderID {
		t.Fatal("expected a new order for a new idempotency key")
	}

	if first.Amount != 999900 || !first.RazorpayConfigured {
		t.Fatalf("unexpected order: %+v", first)
	}
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	_, client := newStub(t, Options{RazorpayConfigured: true})

	_, err := client.CreateOrder(context.Background(), "", "growth", "pay_1_aaa")
	if err == nil {
		t.Fatal("expected auth error")
	}
	if err.Error() != "missing bearer token" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCheckAdmin(t *testing.T) {
	_, client := newStub(t, Options{AdminToken: "admin-token"})
	ctx := context.Background()

	isAdmin, err := client.CheckAdmin(ctx, "admin-token")
	if err != nil {
		t.Fatalf("CheckAdmin returned error: %v", err)
	}
	if !isAdmin {
		t.Fatal("expected admin for the configured token")
	}

	isAdmin, err = client.CheckAdmin(ctx, "user-token")
	if err != nil {
		t.Fatalf("CheckAdmin returned error: %v", err)
	}
	if isAdmin {
		t.Fatal("expected non-admin for another token")
	}
}

func TestAdminControllerRoundTrip(t *testing.T) {
	_, client := newStub(t, Options{AdminToken: "admin-token"})
	sessions := &staticSessions{sess: adminSession()}
	controller := admin.NewTestimonialController(client, sessions, nullNotifier{})
	ctx := context.Background()

	if err := controller.Create(ctx, models.Testimonial{Author: "Asha", Quote: "Great work"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	items := controller.Items()
	if len(items) != 1 || items[0].ID == "" {
		t.Fatalf("expected one created record with a server id, got %+v", items)
	}

	id := items[0].ID
	if err := controller.Toggle(ctx, id, func(tm *models.Testimonial) { tm.Approved = true }, map[string]any{"approved": true}); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}

	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	reloaded := controller.Items()
	if len(reloaded) != 1 || !reloaded[0].Approved {
		t.Fatalf("expected approved record after reload, got %+v", reloaded)
	}

	if err := controller.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(controller.Items()) != 0 {
		t.Fatal("expected empty collection after delete")
	}
}

func TestNoSessionMeansNoAdminRequest(t *testing.T) {
	stub, client := newStub(t, Options{AdminToken: "admin-token"})
	controller := admin.NewBlogController(client, &staticSessions{sess: nil}, nullNotifier{})

	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if n := stub.CountRequests("/api/admin"); n != 0 {
		t.Fatalf("expected zero admin requests without a session, observed %d", n)
	}
}

func TestVerificationRecorded(t *testing.T) {
	stub, client := newStub(t, Options{RazorpayConfigured: true})
	ctx := context.Background()

	err := client.VerifyPayment(ctx, "tok-1", models.PaymentVerification{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig_1",
		Amount:            999900,
		Method:            "razorpay",
	})
	if err != nil {
		t.Fatalf("VerifyPayment returned error: %v", err)
	}

	got := stub.Verifications()
	if len(got) != 1 || got[0].Amount != 999900 || got[0].Method != "razorpay" {
		t.Fatalf("unexpected recorded verification: %+v", got)
	}
}

func TestRejectedVerificationSurfacesMessage(t *testing.T) {
	_, client := newStub(t, Options{RazorpayConfigured: true, RejectVerification: true})

	err := client.VerifyPayment(context.Background(), "tok-1", models.PaymentVerification{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig_bad",
	})
	if err == nil {
		t.Fatal("expected verification error")
	}
	if err.Error() != "signature verification failed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
