// Package classify decides what happens to a single file.
//
// Given a FileRecord and a RuleSet it produces exactly one Decision.
// Resolution order is fixed: ignore-path match, ignore-extension match,
// archive-directory membership, then category lookup. The first match
// wins and a file is never re-evaluated.
package classify

import (
	"path/filepath"
	"strings"
	"time"

	"fastsort/internal/rules"
)

// FileRecord describes one regular file discovered during a walk.
// Immutable once created; the content hash lives with the dedup
// grouping, not here, because it is only computed on demand.
type FileRecord struct {
	// Path is the absolute path of the file
	Path string

	// RelPath is the path relative to the scanned root
	RelPath string

	// Name is the base name
	Name string

	// Ext is the normalized extension (lowercase, no dot, "" when none)
	Ext string

	// Size is the file size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// NewFileRecord builds a FileRecord for a file at absPath, relPath
// relative to the scanned root.
func NewFileRecord(absPath, relPath string, size int64, modTime time.Time) FileRecord {
	name := filepath.Base(absPath)
	return FileRecord{
		Path:    absPath,
		RelPath: relPath,
		Name:    name,
		Ext:     rules.NormalizeExtension(filepath.Ext(name)),
		Size:    size,
		ModTime: modTime,
	}
}

// Year returns the modification year used as the destination bucket.
func (f FileRecord) Year() int {
	return f.ModTime.Year()
}

// DecisionKind enumerates classification outcomes.
type DecisionKind int

const (
	// Ignored marks a file excluded by an ignore rule.
	Ignored DecisionKind = iota

	// Archived marks a file inside a configured archive directory,
	// treated as already organized.
	Archived

	// Categorized marks a file owned by a category rule.
	Categorized

	// Uncategorized marks a file no category claims; it stays in place.
	Uncategorized
)

func (k DecisionKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Archived:
		return "archived"
	case Categorized:
		return "categorized"
	case Uncategorized:
		return "uncategorized"
	default:
		return "unknown"
	}
}

// IgnoreReason says which kind of ignore rule matched.
type IgnoreReason string

const (
	// ExtensionMatch means an `ignore:` extension matched.
	ExtensionMatch IgnoreReason = "extension"

	// PathMatch means an `ignore_path:` pattern matched.
	PathMatch IgnoreReason = "path"
)

// Decision is the classification outcome for one file.
type Decision struct {
	Kind DecisionKind

	// IgnoreReason is set when Kind is Ignored
	IgnoreReason IgnoreReason

	// IgnorePattern is the matched ignore_path pattern (PathMatch only)
	IgnorePattern string

	// ArchiveDir is set when Kind is Archived
	ArchiveDir string

	// Year and Category are set when Kind is Categorized
	Year     int
	Category string
}

// Classify resolves the decision for one file against the rule set.
func Classify(rec FileRecord, rs *rules.RuleSet) Decision {
	if pattern, ok := rs.MatchesIgnorePath(rec.Path, rec.RelPath); ok {
		return Decision{Kind: Ignored, IgnoreReason: PathMatch, IgnorePattern: pattern}
	}

	if rec.Ext != "" && rs.IgnoresExtension(rec.Ext) {
		return Decision{Kind: Ignored, IgnoreReason: ExtensionMatch}
	}

	if dir := topLevelDir(rec.RelPath); dir != "" && rs.IsArchiveDir(dir) {
		return Decision{Kind: Archived, ArchiveDir: dir}
	}

	if rec.Ext != "" {
		if category, ok := rs.CategoryFor(rec.Ext); ok {
			return Decision{Kind: Categorized, Year: rec.Year(), Category: category}
		}
	}

	return Decision{Kind: Uncategorized}
}

// topLevelDir returns the first component of a relative path, or ""
// for files sitting directly in the root.
func topLevelDir(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	if i := strings.IndexByte(relPath, '/'); i > 0 {
		return relPath[:i]
	}
	return ""
}
