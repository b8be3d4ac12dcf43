package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

type fakeAdminChecker struct {
	calls   int
	isAdmin bool
	err     error
}

func (f *fakeAdminChecker) CheckAdmin(ctx context.Context, token string) (bool, error) {
	f.calls++
	return f.isAdmin, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return s
}

func authServer(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthClient(srv.URL, "anon-key")
}

func TestCurrentSessionAbsentIsNotAnError(t *testing.T) {
	p := NewProvider(nil, nil)
	if sess := p.CurrentSession(context.Background()); sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestSignInInstallsSessionAndRunsAdminCheck(t *testing.T) {
	auth := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected grant type %q", r.URL.Query().Get("grant_type"))
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok-1",
			"refresh_token": "ref-1",
			"expires_in":    3600,
			"user":          models.User{ID: "user-1", Email: "a@b.c"},
		})
	})

	checker := &fakeAdminChecker{isAdmin: true}
	p := NewProvider(auth, checker)

	var events []Event
	p.Subscribe(func(event Event, sess *models.Session) {
		events = append(events, event)
	})

	sess, err := p.SignIn(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if sess.AccessToken != "tok-1" || sess.User.ID != "user-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if checker.calls != 1 {
		t.Fatalf("expected 1 admin check, got %d", checker.calls)
	}
	if !p.IsAdmin() {
		t.Fatal("expected admin status true")
	}
	if len(events) != 1 || events[0] != EventSignedIn {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestCurrentSessionRefreshesNearExpiry(t *testing.T) {
	auth := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Errorf("unexpected grant type %q", r.URL.Query().Get("grant_type"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok-2",
			"refresh_token": "ref-2",
			"expires_in":    3600,
			"user":          models.User{ID: "user-1"},
		})
	})

	p := NewProvider(auth, nil)
	p.Restore(context.Background(), &models.Session{
		AccessToken:  "tok-1",
		RefreshToken: "ref-1",
		ExpiresAt:    time.Now().Add(5 * time.Second),
	})

	var events []Event
	p.Subscribe(func(event Event, sess *models.Session) {
		events = append(events, event)
	})

	sess := p.CurrentSession(context.Background())
	if sess == nil || sess.AccessToken != "tok-2" {
		t.Fatalf("expected refreshed session, got %+v", sess)
	}
	if len(events) != 1 || events[0] != EventTokenRefreshed {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestCurrentSessionSignsOutWhenRefreshFails(t *testing.T) {
	auth := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "refresh token revoked"})
	})

	p := NewProvider(auth, nil)
	p.Restore(context.Background(), &models.Session{
		AccessToken:  "tok-1",
		RefreshToken: "ref-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	if sess := p.CurrentSession(context.Background()); sess != nil {
		t.Fatalf("expected nil session after failed refresh, got %+v", sess)
	}
	if p.CurrentSession(context.Background()) != nil {
		t.Fatal("expected session to stay cleared")
	}
}

func TestCheckAdminStatusFailClosed(t *testing.T) {
	p := NewProvider(nil, &fakeAdminChecker{isAdmin: true, err: errors.New("timeout")})
	if p.CheckAdminStatus(context.Background(), "tok-1") {
		t.Fatal("expected false when the admin check errors")
	}

	p = NewProvider(nil, &fakeAdminChecker{isAdmin: true})
	if p.CheckAdminStatus(context.Background(), "") {
		t.Fatal("expected false for an empty token")
	}
}

func TestAdminCheckRerunsOnEveryChange(t *testing.T) {
	auth := authServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "tok-1",
			"refresh_token": "ref-1",
			"expires_in":    3600,
			"user":          models.User{ID: "user-1"},
		})
	})

	checker := &fakeAdminChecker{}
	p := NewProvider(auth, checker)

	if _, err := p.SignIn(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	p.SignOut(context.Background())
	if _, err := p.SignIn(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	// Sign-out clears without a token so only the two sign-ins check.
	if checker.calls != 2 {
		t.Fatalf("expected 2 admin checks, got %d", checker.calls)
	}
	if p.IsAdmin() {
		t.Fatal("expected non-admin for default checker")
	}
}

func TestUnsubscribeStopsEvents(t *testing.T) {
	p := NewProvider(nil, nil)

	calls := 0
	unsubscribe := p.Subscribe(func(Event, *models.Session) { calls++ })
	p.Restore(context.Background(), &models.Session{AccessToken: "tok-1"})
	unsubscribe()
	p.SignOut(context.Background())

	if calls != 1 {
		t.Fatalf("expected 1 event delivery, got %d", calls)
	}
}

func TestTokenExpiryFromClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := tokenExpiry(signedToken(t, exp))
	if !ok {
		t.Fatal("expected exp claim to parse")
	}
	if !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v", exp, got)
	}

	if _, ok := tokenExpiry("not-a-jwt"); ok {
		t.Fatal("expected failure for malformed token")
	}
}
