package rules

import (
	"fmt"
	"strings"
)

// AddExtension returns a copy of rs with ext added to the named
// category, creating the category if it does not exist yet. The
// receiver is not modified.
func (rs *RuleSet) AddExtension(category, ext string) (*RuleSet, error) {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return nil, fmt.Errorf("empty extension")
	}

	next := rs.clone()
	found := false
	for i := range next.categories {
		if next.categories[i].Name == category {
			next.categories[i].Extensions = append(next.categories[i].Extensions, ext)
			found = true
			break
		}
	}
	if !found {
		switch strings.ToLower(category) {
		case directiveIgnore, directiveIgnorePath, directiveArchiveDir:
			return nil, fmt.Errorf("%q is a reserved directive, not a category", category)
		}
		next.categories = append(next.categories, CategoryRule{Name: category, Extensions: []string{ext}})
	}

	// Reparsing catches duplicate ownership and ignore conflicts.
	return Parse(next.Serialize())
}

// RemoveExtension returns a copy of rs with ext removed from whichever
// category owns it, and the name of that category. Categories left
// empty are dropped.
func (rs *RuleSet) RemoveExtension(ext string) (*RuleSet, string, error) {
	ext = NormalizeExtension(ext)
	owner, ok := rs.byExtension[ext]
	if !ok {
		return nil, "", fmt.Errorf("extension %q is not assigned to any category", ext)
	}

	next := rs.clone()
	for i := range next.categories {
		if next.categories[i].Name != owner {
			continue
		}
		kept := next.categories[i].Extensions[:0]
		for _, e := range next.categories[i].Extensions {
			if e != ext {
				kept = append(kept, e)
			}
		}
		next.categories[i].Extensions = kept
		if len(kept) == 0 {
			next.categories = append(next.categories[:i], next.categories[i+1:]...)
		}
		break
	}

	parsed, err := Parse(next.Serialize())
	if err != nil {
		return nil, "", err
	}
	return parsed, owner, nil
}

// clone deep-copies the mutable parts used by the editing helpers.
func (rs *RuleSet) clone() *RuleSet {
	next := &RuleSet{
		categories:  make([]CategoryRule, len(rs.categories)),
		byExtension: make(map[string]string, len(rs.byExtension)),
		ignoreExts:  make(map[string]struct{}, len(rs.ignoreExts)),
		ignorePaths: append([]string(nil), rs.ignorePaths...),
		archiveDirs: append([]string(nil), rs.archiveDirs...),
	}
	for i, cat := range rs.categories {
		next.categories[i] = CategoryRule{
			Name:       cat.Name,
			Extensions: append([]string(nil), cat.Extensions...),
		}
	}
	for k, v := range rs.byExtension {
		next.byExtension[k] = v
	}
	for k := range rs.ignoreExts {
		next.ignoreExts[k] = struct{}{}
	}
	return next
}
