// Package dedup resolves groups of content-identical files that target
// the same destination path.
//
// A DuplicateGroup is only formed after two cheap checks (same
// destination, same size) and one expensive one (same content hash)
// all agree. Resolution picks exactly one keeper per group; the choice
// is either deterministic (ForceKeepNewest) or delegated to an injected
// Chooser so the interactive prompt and scripted test doubles share the
// same seam.
package dedup

import (
	"errors"
	"fmt"
	"sort"

	"fastsort/internal/classify"
)

// Policy selects the duplicate resolution strategy.
type Policy string

const (
	// PolicySkip never forms groups; colliding files get
	// disambiguated destination names instead.
	PolicySkip Policy = "skip"

	// PolicyPrompt asks the injected Chooser once per group.
	PolicyPrompt Policy = "prompt"

	// PolicyForceKeepNewest keeps the file with the greatest
	// modification time, ties broken by lexicographically smallest
	// source path.
	PolicyForceKeepNewest Policy = "force-newest"
)

// ParsePolicy validates a policy name from flags or configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySkip, PolicyPrompt, PolicyForceKeepNewest:
		return Policy(s), nil
	case "":
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown dedup policy %q (want skip, prompt or force-newest)", s)
	}
}

// ErrNoChooser is returned when PolicyPrompt is used without a Chooser.
var ErrNoChooser = errors.New("prompt policy requires a chooser")

// Group is a set of files with identical destination path and content.
type Group struct {
	// Dest is the shared destination path
	Dest string

	// Hash is the shared content hash
	Hash string

	// Files are the members in walk-encounter order
	Files []classify.FileRecord
}

// Chooser picks the keeper for a group and returns its index into
// Group.Files. Supplied by the interactive wizard or a test double.
type Chooser func(Group) (int, error)

// Resolution assigns every group member to keep or delete.
type Resolution struct {
	// Keeper is the index of the kept file in Group.Files
	Keeper int

	// Deleted are the indexes marked for deletion, in member order
	Deleted []int
}

// Resolve picks exactly one keeper for the group.
//
// PolicySkip is not a resolution strategy: under it groups are never
// formed, so asking it to resolve one is a programming error.
func Resolve(g Group, policy Policy, chooser Chooser) (Resolution, error) {
	if len(g.Files) < 2 {
		return Resolution{}, fmt.Errorf("group for %s has %d files, need at least 2", g.Dest, len(g.Files))
	}

	var keeper int
	switch policy {
	case PolicyForceKeepNewest:
		keeper = newestIndex(g.Files)
	case PolicyPrompt:
		if chooser == nil {
			return Resolution{}, ErrNoChooser
		}
		idx, err := chooser(g)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolving duplicates for %s: %w", g.Dest, err)
		}
		if idx < 0 || idx >= len(g.Files) {
			return Resolution{}, fmt.Errorf("chooser picked index %d out of %d files", idx, len(g.Files))
		}
		keeper = idx
	case PolicySkip:
		return Resolution{}, errors.New("skip policy does not resolve duplicate groups")
	default:
		return Resolution{}, fmt.Errorf("unknown dedup policy %q", policy)
	}

	res := Resolution{Keeper: keeper}
	for i := range g.Files {
		if i != keeper {
			res.Deleted = append(res.Deleted, i)
		}
	}
	return res, nil
}

// newestIndex returns the index of the file with the greatest ModTime,
// ties broken by smallest path, independent of input order.
func newestIndex(files []classify.FileRecord) int {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		fa, fb := files[order[a]], files[order[b]]
		if !fa.ModTime.Equal(fb.ModTime) {
			return fa.ModTime.After(fb.ModTime)
		}
		return fa.Path < fb.Path
	})
	return order[0]
}
