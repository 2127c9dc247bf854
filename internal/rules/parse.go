package rules

import (
	"fmt"
	"strings"
)

// Reserved directive keys. Every other key declares a category.
const (
	directiveIgnore     = "ignore"
	directiveIgnorePath = "ignore_path"
	directiveArchiveDir = "archive_dir"
)

// ConfigError describes a rule file that cannot be used.
// No partial RuleSet is ever returned alongside a ConfigError.
type ConfigError struct {
	// Line is the 1-based line number in the rule file (0 when the
	// error is not tied to a single line)
	Line int

	// Text is the offending line as written
	Text string

	// Reason explains what was expected
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("invalid rules: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rules at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Parse builds a RuleSet from rule file text.
//
// Blank lines and lines starting with # are skipped. Every other line
// must be `key: value`. The reserved keys ignore, ignore_path and
// archive_dir are matched case-insensitively; any other key declares a
// category. An extension claimed by two different categories is a
// ConfigError rather than a silent precedence.
func Parse(text string) (*RuleSet, error) {
	rs := &RuleSet{
		byExtension: make(map[string]string),
		ignoreExts:  make(map[string]struct{}),
	}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, &ConfigError{Line: i + 1, Text: line, Reason: "expected `key: value`"}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, &ConfigError{Line: i + 1, Text: line, Reason: "empty rule key"}
		}
		if value == "" {
			return nil, &ConfigError{Line: i + 1, Text: line, Reason: fmt.Sprintf("rule %q has no value", key)}
		}

		switch strings.ToLower(key) {
		case directiveIgnore:
			for _, ext := range splitList(value) {
				rs.ignoreExts[NormalizeExtension(ext)] = struct{}{}
			}
		case directiveIgnorePath:
			rs.ignorePaths = append(rs.ignorePaths, splitList(value)...)
		case directiveArchiveDir:
			rs.archiveDirs = append(rs.archiveDirs, splitList(value)...)
		default:
			if strings.HasPrefix(strings.ToLower(key), directiveIgnore+"_") {
				return nil, &ConfigError{Line: i + 1, Text: line, Reason: fmt.Sprintf("unknown directive %q", key)}
			}
			if err := rs.addCategory(key, splitList(value)); err != nil {
				if ce, ok := err.(*ConfigError); ok {
					ce.Line = i + 1
					ce.Text = line
				}
				return nil, err
			}
		}
	}

	return rs, nil
}

// addCategory registers a category rule, rejecting cross-category
// extension claims. Re-listing an extension inside one category is
// tolerated and collapsed.
func (rs *RuleSet) addCategory(name string, exts []string) error {
	rule := CategoryRule{Name: name}
	for _, raw := range exts {
		ext := NormalizeExtension(raw)
		if ext == "" {
			return &ConfigError{Reason: fmt.Sprintf("category %q lists an empty extension", name)}
		}
		if owner, ok := rs.byExtension[ext]; ok {
			if owner == name {
				continue
			}
			return &ConfigError{Reason: fmt.Sprintf("extension %q claimed by both %q and %q", ext, owner, name)}
		}
		rs.byExtension[ext] = name
		rule.Extensions = append(rule.Extensions, ext)
	}

	// Merge into an earlier rule when the same category name reappears.
	for i := range rs.categories {
		if rs.categories[i].Name == name {
			rs.categories[i].Extensions = append(rs.categories[i].Extensions, rule.Extensions...)
			return nil
		}
	}
	rs.categories = append(rs.categories, rule)
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
