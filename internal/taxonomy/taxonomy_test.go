package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	doc, err := Load("")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if doc != Default() {
		t.Error("Load(\"\") should return the compiled-in default document")
	}
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if doc != Default() {
		t.Error("Load() on a missing file should return the default document")
	}
}

func TestLoad_ExistingFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.json")
	custom := `{"categories":[{"name":"Fuel","subcategories":["Diesel"]}]}`
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if doc != custom {
		t.Errorf("Load() = %q, want file contents %q", doc, custom)
	}
}

func TestLoad_UnreadableFileIsAnError(t *testing.T) {
	// A directory in place of the file forces a read error distinct from
	// not-exist.
	dir := filepath.Join(t.TempDir(), "categories.json")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load() on an unreadable path should return an error, not the default")
	}
}

func TestParse_DefaultDocument(t *testing.T) {
	tax, err := Parse(Default())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if len(tax.Categories) != 10 {
		t.Fatalf("default taxonomy has %d categories, want 10", len(tax.Categories))
	}
	if tax.Categories[0].Name != "Food & Dining" {
		t.Errorf("first category = %q, want Food & Dining", tax.Categories[0].Name)
	}
	if len(tax.Categories[0].Subcategories) == 0 {
		t.Error("first category should carry subcategories")
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse("{not json"); err == nil {
		t.Error("Parse() should fail on malformed JSON")
	}
}
