package planner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"fastsort/internal/classify"
	"fastsort/internal/dedup"
	"fastsort/internal/fsops"
	"fastsort/internal/hash"
	"fastsort/internal/rules"
)

// yearDirPattern matches the tool's own top-level year directories.
var yearDirPattern = regexp.MustCompile(`^\d{4}$`)

// Planner builds Plans. It reads the filesystem (walk, stat, hash) but
// never mutates it.
type Planner struct {
	fs      fsops.FS
	hasher  hash.Hasher
	policy  dedup.Policy
	chooser dedup.Chooser
}

// New creates a Planner. chooser may be nil unless policy is
// PolicyPrompt.
func New(filesystem fsops.FS, hasher hash.Hasher, policy dedup.Policy, chooser dedup.Chooser) *Planner {
	return &Planner{
		fs:      filesystem,
		hasher:  hasher,
		policy:  policy,
		chooser: chooser,
	}
}

// entry keeps walk order: either a finished skip operation or an index
// into the staged moves awaiting duplicate resolution.
type entry struct {
	op     *PlannedOperation
	staged int
}

// staged is a file bound for a destination, before dedup.
type staged struct {
	rec  classify.FileRecord
	dest string
	year int
	cat  string

	// final ops filled in by resolution, in place of a single move
	ops []PlannedOperation
}

// Plan walks root and returns the ordered operation list.
//
// Top-level directories named like years (the tool's own output) are
// not re-scanned, which makes planning idempotent: a second run over an
// organized tree plans zero moves. Symlinks and other non-regular
// files are skipped silently. Per-file errors become Failures and the
// walk continues.
func (p *Planner) Plan(root string, rs *rules.RuleSet) (*Plan, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	info, err := p.fs.Lstat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absRoot)
	}

	plan := &Plan{Root: absRoot}
	var entries []entry
	var stagedFiles []staged

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			plan.Failures = append(plan.Failures, Failure{Path: path, Reason: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			plan.Failures = append(plan.Failures, Failure{Path: path, Reason: relErr.Error()})
			return nil
		}

		if d.IsDir() {
			// The tool's own year/category output is already organized.
			if isTopLevel(rel) && yearDirPattern.MatchString(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, infoErr := d.Info()
		if infoErr != nil {
			plan.Failures = append(plan.Failures, Failure{Path: path, Reason: infoErr.Error()})
			return nil
		}

		rec := classify.NewFileRecord(path, rel, fi.Size(), fi.ModTime())
		decision := classify.Classify(rec, rs)

		switch decision.Kind {
		case classify.Categorized:
			dest := filepath.Join(absRoot, strconv.Itoa(decision.Year), decision.Category, rec.Name)
			stagedFiles = append(stagedFiles, staged{rec: rec, dest: dest, year: decision.Year, cat: decision.Category})
			entries = append(entries, entry{staged: len(stagedFiles) - 1})
		default:
			entries = append(entries, entry{op: &PlannedOperation{
				Kind:   OpSkip,
				Source: path,
				Reason: skipReason(decision),
				Size:   fi.Size(),
			}})
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, walkErr)
	}

	if err := p.resolve(stagedFiles, plan); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.op != nil {
			plan.Operations = append(plan.Operations, *e.op)
			continue
		}
		plan.Operations = append(plan.Operations, stagedFiles[e.staged].ops...)
	}
	return plan, nil
}

// resolve fills in the final operations for every staged file,
// handling destination collisions and duplicate groups.
func (p *Planner) resolve(stagedFiles []staged, plan *Plan) error {
	byDest := make(map[string][]int)
	destOrder := []string{}
	for i, s := range stagedFiles {
		if _, seen := byDest[s.dest]; !seen {
			destOrder = append(destOrder, s.dest)
		}
		byDest[s.dest] = append(byDest[s.dest], i)
	}

	taken := make(map[string]bool)
	for _, dest := range destOrder {
		indexes := byDest[dest]
		if len(indexes) == 1 {
			s := &stagedFiles[indexes[0]]
			s.ops = []PlannedOperation{p.moveOp(s, p.claimDest(s.dest, taken))}
			continue
		}
		if err := p.resolveCollision(dest, indexes, stagedFiles, taken, plan); err != nil {
			return err
		}
	}
	return nil
}

// resolveCollision handles several staged files sharing one destination.
// Content-identical files (same size, then same hash) form duplicate
// groups; everything else falls back to name disambiguation.
func (p *Planner) resolveCollision(dest string, indexes []int, stagedFiles []staged, taken map[string]bool, plan *Plan) error {
	// Size is the cheap pre-filter; only same-size files get hashed.
	bySize := make(map[int64][]int)
	for _, i := range indexes {
		bySize[stagedFiles[i].rec.Size] = append(bySize[stagedFiles[i].rec.Size], i)
	}

	byHash := make(map[string][]int)
	var hashOrder []string
	if p.policy != dedup.PolicySkip {
		for _, i := range indexes {
			if len(bySize[stagedFiles[i].rec.Size]) < 2 {
				continue
			}
			digest, err := p.hasher.HashFile(stagedFiles[i].rec.Path)
			if err != nil {
				// Never guess equality for an unhashable file; it keeps
				// its own disambiguated destination below.
				plan.Failures = append(plan.Failures, Failure{
					Path:   stagedFiles[i].rec.Path,
					Reason: fmt.Sprintf("hash failed, treated as unique: %v", err),
				})
				continue
			}
			if _, seen := byHash[digest]; !seen {
				hashOrder = append(hashOrder, digest)
			}
			byHash[digest] = append(byHash[digest], i)
		}
	}

	resolved := make(map[int]bool)
	for _, digest := range hashOrder {
		members := byHash[digest]
		if len(members) < 2 {
			continue
		}
		group := dedup.Group{Dest: dest, Hash: digest}
		for _, i := range members {
			group.Files = append(group.Files, stagedFiles[i].rec)
		}

		res, err := dedup.Resolve(group, p.policy, p.chooser)
		if err != nil {
			return err
		}

		keeperIdx := members[res.Keeper]
		keeper := &stagedFiles[keeperIdx]
		finalDest := p.claimDest(dest, taken)
		keeper.ops = []PlannedOperation{p.moveOp(keeper, finalDest)}
		resolved[keeperIdx] = true

		for _, d := range res.Deleted {
			i := members[d]
			s := &stagedFiles[i]
			s.ops = []PlannedOperation{{
				Kind:     OpDeleteDuplicate,
				Source:   s.rec.Path,
				Dest:     finalDest,
				Reason:   fmt.Sprintf("duplicate of %s", keeper.rec.Path),
				Year:     s.year,
				Category: s.cat,
				Size:     s.rec.Size,
			}}
			resolved[i] = true
		}
	}

	// Everything not resolved as a duplicate moves to a disambiguated
	// name; nothing is ever overwritten.
	for _, i := range indexes {
		if resolved[i] {
			continue
		}
		s := &stagedFiles[i]
		s.ops = []PlannedOperation{p.moveOp(s, p.claimDest(dest, taken))}
	}
	return nil
}

// claimDest returns dest or, when dest is already taken in this plan or
// present on disk, the first free ` (n)` suffixed variant.
func (p *Planner) claimDest(dest string, taken map[string]bool) string {
	candidate := dest
	for n := 1; ; n++ {
		if !taken[candidate] && !p.existsOnDisk(candidate) {
			taken[candidate] = true
			return candidate
		}
		candidate = suffixed(dest, n)
	}
}

func (p *Planner) existsOnDisk(path string) bool {
	exists, err := p.fs.Exists(path)
	return err == nil && exists
}

// suffixed inserts ` (n)` before the extension: report.pdf -> report (1).pdf.
func suffixed(dest string, n int) string {
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

func (p *Planner) moveOp(s *staged, dest string) PlannedOperation {
	reason := fmt.Sprintf("categorized as %s (%d)", s.cat, s.year)
	if dest != s.dest {
		reason += ", renamed to avoid collision"
	}
	return PlannedOperation{
		Kind:     OpMove,
		Source:   s.rec.Path,
		Dest:     dest,
		Reason:   reason,
		Year:     s.year,
		Category: s.cat,
		Size:     s.rec.Size,
	}
}

func skipReason(d classify.Decision) string {
	switch d.Kind {
	case classify.Ignored:
		if d.IgnoreReason == classify.PathMatch {
			return fmt.Sprintf("ignored: path matches %q", d.IgnorePattern)
		}
		return "ignored: extension"
	case classify.Archived:
		return fmt.Sprintf("archive directory %q", d.ArchiveDir)
	case classify.Uncategorized:
		return "no matching category"
	default:
		return d.Kind.String()
	}
}

func isTopLevel(rel string) bool {
	return !strings.ContainsRune(filepath.ToSlash(rel), '/')
}
