// Package session wraps the hosted auth service: it owns the live session,
// transparent token refresh, admin-status checks, and change notification.
// The auth API is called directly over REST (no SDK dependency).
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pixelcraftlabs/site-gateway/internal/models"
)

// AuthClient talks to the hosted auth service's token endpoints.
type AuthClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewAuthClient creates an auth client. anonKey is the publishable key the
// service expects on every request.
func NewAuthClient(baseURL, anonKey string) *AuthClient {
	return &AuthClient{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewAuthClientWithHTTPClient is the test seam for injecting a transport.
func NewAuthClientWithHTTPClient(baseURL, anonKey string, hc *http.Client) *AuthClient {
	c := NewAuthClient(baseURL, anonKey)
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         models.User `json:"user"`
}

// SignInWithPassword exchanges email/password credentials for a session.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	return a.token(ctx, "password", map[string]string{"email": email, "password": password})
}

// RefreshSession exchanges a refresh token for a fresh session.
func (a *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	return a.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

// SignOut revokes the session server-side. Local state is the provider's
// responsibility; a revocation failure does not keep the user signed in.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("logout failed with status %d", resp.StatusCode)
	}
	return nil
}

func (a *AuthClient) token(ctx context.Context, grantType string, body map[string]string) (*models.Session, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode token request: %w", err)
	}

	url := fmt.Sprintf("%s/auth/v1/token?grant_type=%s", a.baseURL, grantType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", a.anonKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message          string `json:"message"`
			ErrorDescription string `json:"error_description"`
		}
		msg := "authentication failed"
		if json.Unmarshal(raw, &errBody) == nil {
			if errBody.Message != "" {
				msg = errBody.Message
			} else if errBody.ErrorDescription != "" {
				msg = errBody.ErrorDescription
			}
		}
		return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access token")
	}

	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if tok.ExpiresIn == 0 {
		if exp, ok := tokenExpiry(tok.AccessToken); ok {
			expiresAt = exp
		}
	}

	return &models.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         tok.User,
	}, nil
}

// tokenExpiry reads the exp claim from an access token without verifying the
// signature — verification belongs to the backend, this module only needs a
// refresh hint.
func tokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
