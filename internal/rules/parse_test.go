package rules

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Categories(t *testing.T) {
	rs, err := Parse("Documents: pdf, txt\nImages: jpg, PNG\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		ext      string
		wantName string
		wantOK   bool
	}{
		{"pdf", "Documents", true},
		{".pdf", "Documents", true},
		{"TXT", "Documents", true},
		{"png", "Images", true},
		{"jpg", "Images", true},
		{"exe", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		name, ok := rs.CategoryFor(tt.ext)
		if ok != tt.wantOK || name != tt.wantName {
			t.Errorf("CategoryFor(%q) = (%q, %v), want (%q, %v)", tt.ext, name, ok, tt.wantName, tt.wantOK)
		}
	}

	cats := rs.Categories()
	if len(cats) != 2 || cats[0].Name != "Documents" || cats[1].Name != "Images" {
		t.Errorf("Categories() = %v, want declaration order Documents, Images", cats)
	}
}

func TestParse_CommentsAndBlankLines(t *testing.T) {
	text := "# comment\n\n   \nDocuments: pdf\n  # indented comment\n"
	rs, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, ok := rs.CategoryFor("pdf"); !ok {
		t.Error("expected pdf to be categorized")
	}
}

func TestParse_IgnoreDirectives(t *testing.T) {
	rs, err := Parse("ignore: tmp, LOG\nignore_path: Work/keep, /abs/cache\narchive_dir: OldDownloads\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if !rs.IgnoresExtension("tmp") || !rs.IgnoresExtension(".log") {
		t.Error("expected tmp and log to be ignored extensions")
	}
	if rs.IgnoresExtension("pdf") {
		t.Error("pdf should not be ignored")
	}

	if got := rs.IgnorePaths(); len(got) != 2 {
		t.Fatalf("IgnorePaths() = %v, want 2 entries", got)
	}
	if !rs.IsArchiveDir("OldDownloads") {
		t.Error("expected OldDownloads to be an archive dir")
	}
	if rs.IsArchiveDir("Downloads") {
		t.Error("Downloads should not be an archive dir")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{"missing separator", "Documents pdf txt", 1},
		{"empty key", ": pdf", 1},
		{"empty value", "Documents:", 1},
		{"unknown ignore directive", "ignore_extension: tmp", 1},
		{"cross-category extension", "Documents: pdf\nBooks: epub, pdf", 2},
		{"error past valid lines", "Documents: pdf\n\n# ok\nBroken line", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if err == nil {
				t.Fatal("Parse() succeeded, want ConfigError")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if ce.Line != tt.wantLine {
				t.Errorf("ConfigError.Line = %d, want %d", ce.Line, tt.wantLine)
			}
		})
	}
}

func TestParse_SameCategoryRelisting(t *testing.T) {
	// Hand-edited rule files drift; the same category and extension may
	// be listed twice without conflicting with anyone else.
	rs, err := Parse("Documents: pdf, pdf\nDocuments: txt\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	cats := rs.Categories()
	if len(cats) != 1 {
		t.Fatalf("Categories() = %v, want single merged rule", cats)
	}
	if got := strings.Join(cats[0].Extensions, ","); got != "pdf,txt" {
		t.Errorf("merged extensions = %q, want %q", got, "pdf,txt")
	}
}

func TestParse_ReservedKeysCaseInsensitive(t *testing.T) {
	rs, err := Parse("Ignore: tmp\nARCHIVE_DIR: Old\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !rs.IgnoresExtension("tmp") {
		t.Error("Ignore: should be treated as the ignore directive")
	}
	if !rs.IsArchiveDir("Old") {
		t.Error("ARCHIVE_DIR: should be treated as the archive_dir directive")
	}
}

func TestMatchesIgnorePath(t *testing.T) {
	rs, err := Parse("ignore_path: Work/keep, /var/cache\n")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		abs, rel string
		want     bool
	}{
		{"/home/u/dl/Work/keep", "Work/keep", true},
		{"/home/u/dl/Work/keep/a.txt", "Work/keep/a.txt", true},
		{"/home/u/dl/Work/keeper/a.txt", "Work/keeper/a.txt", false},
		{"/var/cache/pkg.deb", "pkg.deb", true},
		{"/var/cachex/pkg.deb", "pkg.deb", false},
		{"/home/u/dl/a.txt", "a.txt", false},
	}

	for _, tt := range tests {
		if _, got := rs.MatchesIgnorePath(tt.abs, tt.rel); got != tt.want {
			t.Errorf("MatchesIgnorePath(%q, %q) = %v, want %v", tt.abs, tt.rel, got, tt.want)
		}
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	text := "Documents: pdf, txt\nImages: jpg\nignore: tmp\nignore_path: Work/keep\narchive_dir: Old\n"
	rs, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	again, err := Parse(rs.Serialize())
	if err != nil {
		t.Fatalf("Parse(Serialize()) error: %v", err)
	}

	for _, ext := range []string{"pdf", "txt", "jpg", "exe", "tmp"} {
		n1, ok1 := rs.CategoryFor(ext)
		n2, ok2 := again.CategoryFor(ext)
		if n1 != n2 || ok1 != ok2 {
			t.Errorf("CategoryFor(%q) diverged after round trip: (%q,%v) vs (%q,%v)", ext, n1, ok1, n2, ok2)
		}
		if rs.IgnoresExtension(ext) != again.IgnoresExtension(ext) {
			t.Errorf("IgnoresExtension(%q) diverged after round trip", ext)
		}
	}
	if len(again.IgnorePaths()) != 1 || !again.IsArchiveDir("Old") {
		t.Error("ignore_path / archive_dir did not survive round trip")
	}
}

func TestDefault_Parses(t *testing.T) {
	rs, err := Parse(Default())
	if err != nil {
		t.Fatalf("Parse(Default()) error: %v", err)
	}
	if name, ok := rs.CategoryFor("pdf"); !ok || name != "archive_documents" {
		t.Errorf("default rules: CategoryFor(pdf) = (%q, %v)", name, ok)
	}
	if !rs.IgnoresExtension("tmp") {
		t.Error("default rules should ignore tmp")
	}
}
