package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signatures.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadCatalogFile(t *testing.T) {
	path := writeTempFile(t, `
signatures:
  - name: custom_gateway
    pattern: "(?i)\\bmollie\\b"
    strong: true
  - name: custom_cart
    pattern: "(?i)minicart"
`)

	sigs, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile: %v", err)
	}

	if len(sigs) != 2 {
		t.Fatalf("expected 2 signatures, got %d", len(sigs))
	}
	if sigs[0].Name != "custom_gateway" || !sigs[0].Strong {
		t.Errorf("unexpected first signature: %+v", sigs[0])
	}
	if !sigs[0].Pattern.MatchString("pay with Mollie today") {
		t.Error("expected compiled pattern to match case-insensitively")
	}
	if sigs[1].Strong {
		t.Error("expected strong to default to false")
	}
}

func TestLoadCatalogFile_InvalidPattern(t *testing.T) {
	path := writeTempFile(t, `
signatures:
  - name: broken
    pattern: "("
`)

	if _, err := LoadCatalogFile(path); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestLoadCatalogFile_MissingName(t *testing.T) {
	path := writeTempFile(t, `
signatures:
  - pattern: "cart"
`)

	if _, err := LoadCatalogFile(path); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestLoadCatalogFile_MissingFile(t *testing.T) {
	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultCatalog_StrongSubset(t *testing.T) {
	want := map[string]bool{
		"begin_checkout_event":    true,
		"initiate_checkout_event": true,
		"checkout_endpoint":       true,
		"stripe":                  true,
		"shopify":                 true,
	}

	got := make(map[string]bool)
	for _, sig := range DefaultCatalog {
		if sig.Strong {
			got[sig.Name] = true
		}
	}

	if len(got) != len(want) {
		t.Errorf("expected %d strong signatures, got %d: %v", len(want), len(got), got)
	}
	for name := range want {
		if !got[name] {
			t.Errorf("expected %s to be strong", name)
		}
	}
}
