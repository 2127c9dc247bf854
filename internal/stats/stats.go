// Package stats computes directory statistics for `fastsort stats`.
package stats

import (
	"io/fs"
	"path/filepath"
	"sort"

	"fastsort/internal/rules"
)

// topFiles is how many largest files a report keeps.
const topFiles = 10

// FileSize pairs a path with its size for the largest-files table.
type FileSize struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Stats summarizes a directory tree.
type Stats struct {
	Root        string         `json:"root"`
	TotalFiles  int            `json:"total_files"`
	TotalDirs   int            `json:"total_dirs"`
	TotalBytes  int64          `json:"total_bytes"`
	ByExtension map[string]int `json:"by_extension"`
	ByYear      map[int]int    `json:"by_year"`
	Largest     []FileSize     `json:"largest"`
	Failures    []string       `json:"failures,omitempty"`
}

// Collect walks root and gathers statistics. Unreadable entries are
// recorded and skipped; the walk continues.
func Collect(root string) (*Stats, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	s := &Stats{
		Root:        absRoot,
		ByExtension: make(map[string]int),
		ByYear:      make(map[int]int),
	}

	var all []FileSize
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.Failures = append(s.Failures, path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == absRoot {
			return nil
		}
		if d.IsDir() {
			s.TotalDirs++
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			s.Failures = append(s.Failures, path)
			return nil
		}

		s.TotalFiles++
		s.TotalBytes += info.Size()
		if ext := rules.NormalizeExtension(filepath.Ext(d.Name())); ext != "" {
			s.ByExtension[ext]++
		}
		s.ByYear[info.ModTime().Year()]++
		all = append(all, FileSize{Path: path, Size: info.Size()})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Size != all[j].Size {
			return all[i].Size > all[j].Size
		}
		return all[i].Path < all[j].Path
	})
	if len(all) > topFiles {
		all = all[:topFiles]
	}
	s.Largest = all
	return s, nil
}

// TopExtensions returns up to n extensions by descending count, ties
// broken alphabetically.
func (s *Stats) TopExtensions(n int) []string {
	exts := make([]string, 0, len(s.ByExtension))
	for ext := range s.ByExtension {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if s.ByExtension[exts[i]] != s.ByExtension[exts[j]] {
			return s.ByExtension[exts[i]] > s.ByExtension[exts[j]]
		}
		return exts[i] < exts[j]
	})
	if len(exts) > n {
		exts = exts[:n]
	}
	return exts
}

// Years returns the observed years, newest first.
func (s *Stats) Years() []int {
	years := make([]int, 0, len(s.ByYear))
	for y := range s.ByYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
