package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envAPIBaseURL, "https://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("unexpected base URL: %q", cfg.APIBaseURL)
	}
	if cfg.LoginPath != defaultLoginPath {
		t.Fatalf("expected login path %q, got %q", defaultLoginPath, cfg.LoginPath)
	}
	if cfg.PaymentSuccessPath != defaultPaymentSuccessPath {
		t.Fatalf("expected success path %q, got %q", defaultPaymentSuccessPath, cfg.PaymentSuccessPath)
	}
	if cfg.StubAddr != defaultStubAddr {
		t.Fatalf("expected stub addr %q, got %q", defaultStubAddr, cfg.StubAddr)
	}
}

func TestLoadRequiresAPIBaseURL(t *testing.T) {
	t.Setenv(envAPIBaseURL, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SITE_API_BASE_URL missing")
	}
}

func TestLoadSanitizesAPIBaseURL(t *testing.T) {
	t.Setenv(envAPIBaseURL, ` "https://api.example.com/api/" `)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected sanitized base URL, got %q", cfg.APIBaseURL)
	}
}

func TestLoadAuthPairValidation(t *testing.T) {
	t.Setenv(envAPIBaseURL, "https://api.example.com")
	t.Setenv(envAuthBaseURL, "https://auth.example.com")
	t.Setenv(envAuthAnonKey, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when auth URL is set without a key")
	}

	t.Setenv(envAuthBaseURL, "")
	t.Setenv(envAuthAnonKey, "anon-key")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when auth key is set without a URL")
	}
}

func TestSanitizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://api.example.com", "https://api.example.com"},
		{"  https://api.example.com  ", "https://api.example.com"},
		{`"https://api.example.com"`, "https://api.example.com"},
		{"'https://api.example.com/'", "https://api.example.com"},
		{"https://api.example.com/", "https://api.example.com"},
		{"https://api.example.com///", "https://api.example.com"},
		{"https://api.example.com/api", "https://api.example.com"},
		{"https://api.example.com/api/", "https://api.example.com"},
		{"https://api.example.com/api/api/", "https://api.example.com"},
	}

	for _, tc := range cases {
		got := SanitizeBaseURL(tc.in)
		if got != tc.want {
			t.Errorf("SanitizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if strings.HasSuffix(got, "/") {
			t.Errorf("SanitizeBaseURL(%q) left a trailing slash: %q", tc.in, got)
		}
	}
}
