package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fen0x/marvin/internal/rules"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write rule file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeRuleFile(t, `{"rules": [
		{"number": 1, "text": "Be civil"},
		{"number": 3, "text": "No spam"}
	]}`)

	table, err := rules.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	text, ok := table.Lookup(3)
	if !ok || text != "No spam" {
		t.Errorf("Lookup(3) = %q, %v; want \"No spam\", true", text, ok)
	}

	if _, ok := table.Lookup(99); ok {
		t.Error("Lookup(99) reported a rule that does not exist")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := rules.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load() with missing file did not return an error")
	}
}

func TestLoadDuplicateNumbers(t *testing.T) {
	t.Parallel()

	path := writeRuleFile(t, `{"rules": [
		{"number": 1, "text": "first"},
		{"number": 1, "text": "second"}
	]}`)

	if _, err := rules.Load(path); err == nil {
		t.Fatal("Load() with duplicate rule numbers did not return an error")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeRuleFile(t, `{"rules": [`)

	if _, err := rules.Load(path); err == nil {
		t.Fatal("Load() with malformed JSON did not return an error")
	}
}
