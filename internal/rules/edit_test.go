package rules

import (
	"strings"
	"testing"
)

func TestAddExtension_ExistingCategory(t *testing.T) {
	rs, err := Parse("docs: pdf, txt\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	next, err := rs.AddExtension("docs", ".MD")
	if err != nil {
		t.Fatalf("AddExtension: %v", err)
	}
	if cat, ok := next.CategoryFor("md"); !ok || cat != "docs" {
		t.Fatalf("md -> (%q, %v), want (docs, true)", cat, ok)
	}
	// Receiver untouched.
	if _, ok := rs.CategoryFor("md"); ok {
		t.Fatal("original RuleSet was mutated")
	}
}

func TestAddExtension_NewCategory(t *testing.T) {
	rs, err := Parse("docs: pdf\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	next, err := rs.AddExtension("music", "mp3")
	if err != nil {
		t.Fatalf("AddExtension: %v", err)
	}
	cats := next.Categories()
	if len(cats) != 2 || cats[1].Name != "music" {
		t.Fatalf("categories = %v, want docs then music", cats)
	}
}

func TestAddExtension_ConflictRejected(t *testing.T) {
	rs, err := Parse("docs: pdf\nbooks: epub\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := rs.AddExtension("books", "pdf"); err == nil {
		t.Fatal("expected cross-category conflict error")
	}
}

func TestAddExtension_ReservedName(t *testing.T) {
	rs, err := Parse("docs: pdf\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	for _, name := range []string{"ignore", "Ignore_Path", "archive_dir"} {
		if _, err := rs.AddExtension(name, "xyz"); err == nil {
			t.Errorf("AddExtension(%q) should be rejected", name)
		}
	}
}

func TestAddExtension_Empty(t *testing.T) {
	rs, _ := Parse("docs: pdf\n")
	if _, err := rs.AddExtension("docs", "  ."); err == nil {
		t.Fatal("expected error for empty extension")
	}
}

func TestRemoveExtension(t *testing.T) {
	rs, err := Parse("docs: pdf, txt\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	next, owner, err := rs.RemoveExtension("PDF")
	if err != nil {
		t.Fatalf("RemoveExtension: %v", err)
	}
	if owner != "docs" {
		t.Fatalf("owner = %q, want docs", owner)
	}
	if _, ok := next.CategoryFor("pdf"); ok {
		t.Fatal("pdf still assigned after removal")
	}
	if cat, ok := next.CategoryFor("txt"); !ok || cat != "docs" {
		t.Fatal("txt should survive removal of pdf")
	}
}

func TestRemoveExtension_DropsEmptyCategory(t *testing.T) {
	rs, err := Parse("docs: pdf\nmusic: mp3\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	next, _, err := rs.RemoveExtension("mp3")
	if err != nil {
		t.Fatalf("RemoveExtension: %v", err)
	}
	for _, cat := range next.Categories() {
		if cat.Name == "music" {
			t.Fatal("empty category music should have been dropped")
		}
	}
	if strings.Contains(next.Serialize(), "music") {
		t.Fatal("serialized rules still mention music")
	}
}

func TestRemoveExtension_Unknown(t *testing.T) {
	rs, _ := Parse("docs: pdf\n")
	if _, _, err := rs.RemoveExtension("zzz"); err == nil {
		t.Fatal("expected error for unassigned extension")
	}
}
