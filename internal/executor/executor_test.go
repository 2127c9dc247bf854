package executor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fastsort/internal/dedup"
	"fastsort/internal/fsops"
	"fastsort/internal/hash"
	"fastsort/internal/logging"
	"fastsort/internal/planner"
	"fastsort/internal/rules"
)

func testLogger(t *testing.T) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := logging.New(logging.WithWriters(&buf, &buf), logging.WithVerbose())
	if err != nil {
		t.Fatalf("logging.New() error: %v", err)
	}
	return l, &buf
}

func buildPlan(t *testing.T, root string) *planner.Plan {
	t.Helper()
	rs, err := rules.Parse("Documents: txt\nignore: tmp\n")
	if err != nil {
		t.Fatalf("rules.Parse() error: %v", err)
	}
	p := planner.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), dedup.PolicyForceKeepNewest, nil)
	plan, err := p.Plan(root, rs)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	return plan
}

func writeAt(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
}

func TestRun_Execute(t *testing.T) {
	root := t.TempDir()
	mod := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	writeAt(t, filepath.Join(root, "notes.txt"), "n", mod)
	writeAt(t, filepath.Join(root, "scratch.tmp"), "s", mod)
	// Duplicate pair, older copy should be deleted.
	writeAt(t, filepath.Join(root, "dup", "notes.txt"), "n", mod.Add(-time.Hour))

	plan := buildPlan(t, root)
	log, _ := testLogger(t)
	result := New(fsops.NewRealFS(), log).Run(plan, ModeExecute)

	if len(result.Failed) != 0 {
		t.Fatalf("failed ops: %+v", result.Failed)
	}

	moved := filepath.Join(root, "2023", "Documents", "notes.txt")
	if _, err := os.Lstat(moved); err != nil {
		t.Errorf("moved file missing at %s: %v", moved, err)
	}
	if _, err := os.Lstat(filepath.Join(root, "notes.txt")); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}
	if _, err := os.Lstat(filepath.Join(root, "dup", "notes.txt")); !os.IsNotExist(err) {
		t.Error("duplicate not deleted")
	}
	if _, err := os.Lstat(filepath.Join(root, "scratch.tmp")); err != nil {
		t.Error("ignored file should be untouched")
	}
}

func TestRun_TestModeMovesNothing(t *testing.T) {
	root := t.TempDir()
	mod := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	writeAt(t, filepath.Join(root, "notes.txt"), "n", mod)

	plan := buildPlan(t, root)
	log, buf := testLogger(t)
	result := New(fsops.NewRealFS(), log).Run(plan, ModeTest)

	if len(result.Completed) != len(plan.Operations) {
		t.Errorf("completed %d of %d operations", len(result.Completed), len(plan.Operations))
	}
	if _, err := os.Lstat(filepath.Join(root, "notes.txt")); err != nil {
		t.Error("test mode moved a file")
	}
	if _, err := os.Lstat(filepath.Join(root, "2023")); !os.IsNotExist(err) {
		t.Error("test mode created destination directories")
	}
	if !strings.Contains(buf.String(), "[test] move") {
		t.Errorf("test mode did not narrate moves: %q", buf.String())
	}
}

func TestRun_PreviewIsSilent(t *testing.T) {
	root := t.TempDir()
	writeAt(t, filepath.Join(root, "notes.txt"), "n", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC))

	plan := buildPlan(t, root)
	log, buf := testLogger(t)
	New(fsops.NewRealFS(), log).Run(plan, ModePreview)

	if buf.Len() != 0 {
		t.Errorf("preview mode logged: %q", buf.String())
	}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	mod := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	writeAt(t, filepath.Join(root, "a.txt"), "a", mod)
	writeAt(t, filepath.Join(root, "b.txt"), "b", mod)

	plan := buildPlan(t, root)

	// Remove one source after planning so its move fails.
	if err := os.Remove(filepath.Join(root, "a.txt")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	log, _ := testLogger(t)
	result := New(fsops.NewRealFS(), log).Run(plan, ModeExecute)

	if len(result.Failed) != 1 {
		t.Fatalf("failed = %+v, want exactly the vanished file", result.Failed)
	}
	if filepath.Base(result.Failed[0].Op.Source) != "a.txt" {
		t.Errorf("failed op = %+v", result.Failed[0])
	}
	if _, err := os.Lstat(filepath.Join(root, "2023", "Documents", "b.txt")); err != nil {
		t.Error("run did not continue past the failure")
	}
}

func TestRun_RefusesLateArrivals(t *testing.T) {
	root := t.TempDir()
	mod := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	writeAt(t, filepath.Join(root, "a.txt"), "new", mod)

	plan := buildPlan(t, root)

	// A file lands at the destination between planning and execution.
	dest := filepath.Join(root, "2023", "Documents", "a.txt")
	writeAt(t, dest, "old", mod)

	log, _ := testLogger(t)
	result := New(fsops.NewRealFS(), log).Run(plan, ModeExecute)

	if len(result.Failed) != 1 {
		t.Fatalf("failed = %+v, want refusal to overwrite", result.Failed)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "old" {
		t.Errorf("destination content = %q, %v; want untouched %q", data, err, "old")
	}
}
