package models

import "time"

// User is the identity attached to a hosted-auth session.
type User struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

// Session is the live credential handed out by the hosted auth service.
// The access token is an opaque bearer value from the module's perspective;
// only its expiry claim is ever inspected locally.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// DisplayName returns the best-effort human name for form prefill.
func (u User) DisplayName() string {
	if name := u.Metadata["full_name"]; name != "" {
		return name
	}
	if name := u.Metadata["name"]; name != "" {
		return name
	}
	return u.Email
}
