package identity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureCreatesOnce(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.Ensure()
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if !strings.HasPrefix(first.ID, "anon_") {
		t.Fatalf("unexpected id format: %q", first.ID)
	}

	second, err := store.Ensure()
	if err != nil {
		t.Fatalf("second Ensure returned error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("identity changed between calls: %q vs %q", first.ID, second.ID)
	}
}

func TestEnsureSurvivesNewStoreOverSameDir(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir).Ensure()
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}

	second, err := NewStore(dir).Ensure()
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatal("expected identity to persist across store instances")
	}
}

func TestEnsureRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	ident, err := NewStore(dir).Ensure()
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}
	if ident.ID == "" {
		t.Fatal("expected a fresh identity after corruption")
	}
}
