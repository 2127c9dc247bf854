package rules

import (
	"path/filepath"
	"sort"
	"strings"
)

// CategoryRule maps a destination folder name to the extensions it owns.
type CategoryRule struct {
	// Name is the category folder name (e.g. "Documents")
	Name string

	// Extensions is the ordered list of owned extensions, lowercase,
	// without leading dot
	Extensions []string
}

// RuleSet is an immutable snapshot of all parsed rules.
// It is constructed once by Parse and read-only afterwards.
type RuleSet struct {
	categories  []CategoryRule
	byExtension map[string]string
	ignoreExts  map[string]struct{}
	ignorePaths []string
	archiveDirs []string
}

// Categories returns the category rules in the order they were declared.
func (rs *RuleSet) Categories() []CategoryRule {
	out := make([]CategoryRule, len(rs.categories))
	copy(out, rs.categories)
	return out
}

// CategoryFor returns the category owning the given extension.
// The extension is normalized (lowercased, leading dot stripped) before
// lookup.
func (rs *RuleSet) CategoryFor(ext string) (string, bool) {
	name, ok := rs.byExtension[NormalizeExtension(ext)]
	return name, ok
}

// IgnoresExtension reports whether the extension is covered by an
// ignore rule.
func (rs *RuleSet) IgnoresExtension(ext string) bool {
	_, ok := rs.ignoreExts[NormalizeExtension(ext)]
	return ok
}

// IgnoredExtensions returns the ignored extensions in sorted order.
func (rs *RuleSet) IgnoredExtensions() []string {
	out := make([]string, 0, len(rs.ignoreExts))
	for ext := range rs.ignoreExts {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// IgnorePaths returns the configured ignore-path patterns.
func (rs *RuleSet) IgnorePaths() []string {
	out := make([]string, len(rs.ignorePaths))
	copy(out, rs.ignorePaths)
	return out
}

// ArchiveDirs returns the configured archive directory names.
func (rs *RuleSet) ArchiveDirs() []string {
	out := make([]string, len(rs.archiveDirs))
	copy(out, rs.archiveDirs)
	return out
}

// IsArchiveDir reports whether the given directory name is configured
// as an archive directory.
func (rs *RuleSet) IsArchiveDir(name string) bool {
	for _, dir := range rs.archiveDirs {
		if dir == name {
			return true
		}
	}
	return false
}

// MatchesIgnorePath returns the first ignore-path pattern that the
// given path equals or is nested under. Relative patterns are matched
// against relPath (the path relative to the scanned root), absolute
// patterns against absPath.
func (rs *RuleSet) MatchesIgnorePath(absPath, relPath string) (string, bool) {
	for _, pattern := range rs.ignorePaths {
		candidate := relPath
		if filepath.IsAbs(pattern) {
			candidate = absPath
		}
		if pathHasPrefix(candidate, pattern) {
			return pattern, true
		}
	}
	return "", false
}

// NormalizeExtension lowercases an extension and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// pathHasPrefix reports whether path equals prefix or lives under it,
// respecting path component boundaries.
func pathHasPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}
