package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// Event names a session lifecycle change.
type Event string

const (
	EventSignedIn       Event = "signed_in"
	EventSignedOut      Event = "signed_out"
	EventTokenRefreshed Event = "token_refreshed"
)

// Listener receives session changes. The session is nil for EventSignedOut.
type Listener func(event Event, session *models.Session)

// AdminChecker reports whether a bearer token belongs to an admin.
// Implemented by the gateway client's /api/check-admin call.
type AdminChecker interface {
	CheckAdmin(ctx context.Context, token string) (bool, error)
}

// refreshSkew is how close to expiry a token may get before CurrentSession
// refreshes it.
const refreshSkew = 30 * time.Second

// Provider owns the current session. It is passed explicitly to callers
// rather than living in a package-level singleton, so tests can supply a
// fake without monkey-patching.
type Provider struct {
	auth  *AuthClient
	admin AdminChecker

	mu        sync.Mutex
	current   *models.Session
	isAdmin   bool
	listeners map[int]Listener
	nextID    int
}

// NewProvider creates a provider. admin may be nil when the caller never
// needs admin checks (public-page usage).
func NewProvider(auth *AuthClient, admin AdminChecker) *Provider {
	return &Provider{
		auth:      auth,
		admin:     admin,
		listeners: map[int]Listener{},
	}
}

// SignIn authenticates with the hosted auth service and installs the
// resulting session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := p.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.install(ctx, sess, EventSignedIn)
	return sess, nil
}

// SignOut revokes the session best-effort and always clears local state:
// a revocation failure must not leave the user signed in.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	sess := p.current
	p.mu.Unlock()

	var err error
	if sess != nil && p.auth != nil {
		if err = p.auth.SignOut(ctx, sess.AccessToken); err != nil {
			log.Printf("[session] sign-out revocation failed: %v", err)
		}
	}
	p.install(ctx, nil, EventSignedOut)
	return err
}

// Restore installs a previously obtained session (e.g. loaded from the
// browser's storage on page load) without a credential exchange.
func (p *Provider) Restore(ctx context.Context, sess *models.Session) {
	if sess == nil {
		return
	}
	p.install(ctx, sess, EventSignedIn)
}

// CurrentSession returns the live session or nil. Absence of a session is a
// normal result, never an error. A session at or near expiry is refreshed
// transparently; if the refresh fails the session is treated as absent.
func (p *Provider) CurrentSession(ctx context.Context) *models.Session {
	p.mu.Lock()
	sess := p.current
	p.mu.Unlock()

	if sess == nil {
		return nil
	}
	if sess.ExpiresAt.IsZero() || time.Until(sess.ExpiresAt) > refreshSkew {
		return sess
	}

	if sess.RefreshToken == "" || p.auth == nil {
		log.Printf("[session] token expired with no refresh token, signing out")
		p.install(ctx, nil, EventSignedOut)
		return nil
	}

	refreshed, err := p.auth.RefreshSession(ctx, sess.RefreshToken)
	if err != nil {
		log.Printf("[session] token refresh failed, signing out: %v", err)
		p.install(ctx, nil, EventSignedOut)
		return nil
	}

	p.install(ctx, refreshed, EventTokenRefreshed)
	return refreshed
}

// IsAdmin reports the admin status established at the last session change.
func (p *Provider) IsAdmin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isAdmin
}

// CheckAdminStatus asks the backend whether the token belongs to an admin.
// Any failure — transport, timeout, decode — resolves to false. A transport
// error must never grant elevated access.
func (p *Provider) CheckAdminStatus(ctx context.Context, token string) bool {
	if p.admin == nil || token == "" {
		return false
	}
	isAdmin, err := p.admin.CheckAdmin(ctx, token)
	if err != nil {
		log.Printf("[session] admin check failed, treating as non-admin: %v", err)
		return false
	}
	return isAdmin
}

// Subscribe registers a listener for session changes and returns its
// unsubscribe function.
func (p *Provider) Subscribe(l Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// install swaps the current session, re-runs the admin check, and notifies
// listeners. Admin status is never cached independently of the session's
// validity, so every change re-derives it.
func (p *Provider) install(ctx context.Context, sess *models.Session, event Event) {
	isAdmin := false
	if sess != nil {
		isAdmin = p.CheckAdminStatus(ctx, sess.AccessToken)
	}

	p.mu.Lock()
	p.current = sess
	p.isAdmin = isAdmin
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(event, sess)
	}
}
