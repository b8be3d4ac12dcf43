package config

import (
	"fmt"
	"os"
	"strings"
)

// Config captures runtime configuration values used by the gateway client
// and the bundled commands.
type Config struct {
	// APIBaseURL is the root of the hosted backend REST API, already
	// sanitized (no surrounding quotes, no trailing slash, no trailing
	// "/api" segment — endpoints carry their own "/api" prefix).
	APIBaseURL string

	// AuthBaseURL is the root of the hosted auth service.
	AuthBaseURL string

	// AuthAnonKey is the publishable key sent with every auth request.
	AuthAnonKey string

	// LoginPath is the in-site destination for unauthenticated checkout
	// attempts. Defaults to "/login".
	LoginPath string

	// PaymentSuccessPath is the in-site destination after a verified
	// payment. Defaults to "/payment-success".
	PaymentSuccessPath string

	// ContactFallbackURL is the direct-messaging escape hatch offered when
	// a service-request submission fails.
	ContactFallbackURL string

	// StubAddr is the host:port pair the development stub backend listens
	// on. Defaults to ":18230".
	StubAddr string
}

const (
	defaultLoginPath          = "/login"
	defaultPaymentSuccessPath = "/payment-success"
	defaultContactFallback    = "https://wa.me/919000000000"
	defaultStubAddr           = ":18230"

	envAPIBaseURL         = "SITE_API_BASE_URL"
	envAuthBaseURL        = "SITE_AUTH_BASE_URL"
	envAuthAnonKey        = "SITE_AUTH_ANON_KEY"
	envLoginPath          = "SITE_LOGIN_PATH"
	envPaymentSuccessPath = "SITE_PAYMENT_SUCCESS_PATH"
	envContactFallback    = "SITE_CONTACT_FALLBACK_URL"
	envStubAddr           = "STUB_ADDR"
)

// Load reads configuration from environment variables, applies defaults, and
// returns a Config structure. Required values return an error when missing.
func Load() (Config, error) {
	cfg := Config{
		APIBaseURL:         SanitizeBaseURL(os.Getenv(envAPIBaseURL)),
		AuthBaseURL:        SanitizeBaseURL(os.Getenv(envAuthBaseURL)),
		AuthAnonKey:        strings.TrimSpace(os.Getenv(envAuthAnonKey)),
		LoginPath:          firstNonEmpty(os.Getenv(envLoginPath), defaultLoginPath),
		PaymentSuccessPath: firstNonEmpty(os.Getenv(envPaymentSuccessPath), defaultPaymentSuccessPath),
		ContactFallbackURL: firstNonEmpty(os.Getenv(envContactFallback), defaultContactFallback),
		StubAddr:           firstNonEmpty(os.Getenv(envStubAddr), defaultStubAddr),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("%s is required", envAPIBaseURL)
	}

	// Auth values travel as a pair: a base URL without its key (or the
	// reverse) points at a half-configured environment.
	if cfg.AuthBaseURL != "" && cfg.AuthAnonKey == "" {
		return Config{}, fmt.Errorf("%s is required when %s is set", envAuthAnonKey, envAuthBaseURL)
	}
	if cfg.AuthAnonKey != "" && cfg.AuthBaseURL == "" {
		return Config{}, fmt.Errorf("%s is required when %s is set", envAuthBaseURL, envAuthAnonKey)
	}

	return cfg, nil
}

// SanitizeBaseURL normalizes a base URL copied from an environment file:
// surrounding whitespace and quotes are stripped, as are trailing slashes
// and any trailing "/api" segment, so that joining an endpoint that starts
// with "/api/..." can never produce "//" or "/api/api".
func SanitizeBaseURL(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, `"'`)
	v = strings.TrimSpace(v)

	for {
		trimmed := strings.TrimRight(v, "/")
		trimmed = strings.TrimSuffix(trimmed, "/api")
		if trimmed == v {
			return v
		}
		v = trimmed
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
