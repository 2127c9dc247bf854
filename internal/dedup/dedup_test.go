package dedup

import (
	"errors"
	"testing"
	"time"

	"fastsort/internal/classify"
)

func rec(path string, modTime time.Time) classify.FileRecord {
	return classify.NewFileRecord(path, path, 10, modTime)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"skip", PolicySkip, false},
		{"prompt", PolicyPrompt, false},
		{"force-newest", PolicyForceKeepNewest, false},
		{"", PolicySkip, false},
		{"newest", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_ForceKeepNewest(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	a := rec("/dl/a.txt", newer)
	b := rec("/dl/b.txt", older)

	// Keeper is independent of member order.
	for name, files := range map[string][]classify.FileRecord{
		"newest first": {a, b},
		"newest last":  {b, a},
	} {
		g := Group{Dest: "/dl/2023/Documents/a.txt", Hash: "h", Files: files}
		res, err := Resolve(g, PolicyForceKeepNewest, nil)
		if err != nil {
			t.Fatalf("%s: Resolve() error: %v", name, err)
		}
		if g.Files[res.Keeper].Path != "/dl/a.txt" {
			t.Errorf("%s: kept %s, want /dl/a.txt", name, g.Files[res.Keeper].Path)
		}
		if len(res.Deleted) != 1 || g.Files[res.Deleted[0]].Path != "/dl/b.txt" {
			t.Errorf("%s: deleted = %v, want b.txt only", name, res.Deleted)
		}
	}
}

func TestResolve_ForceKeepNewest_TieBreaksOnPath(t *testing.T) {
	mod := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	g := Group{
		Dest:  "/dl/2023/Documents/x.txt",
		Hash:  "h",
		Files: []classify.FileRecord{rec("/dl/z.txt", mod), rec("/dl/a.txt", mod)},
	}

	res, err := Resolve(g, PolicyForceKeepNewest, nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if g.Files[res.Keeper].Path != "/dl/a.txt" {
		t.Errorf("tie kept %s, want lexicographically smallest /dl/a.txt", g.Files[res.Keeper].Path)
	}
}

func TestResolve_Prompt(t *testing.T) {
	mod := time.Now()
	g := Group{Dest: "d", Hash: "h", Files: []classify.FileRecord{rec("/dl/a", mod), rec("/dl/b", mod)}}

	var seen Group
	res, err := Resolve(g, PolicyPrompt, func(got Group) (int, error) {
		seen = got
		return 1, nil
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if res.Keeper != 1 {
		t.Errorf("Keeper = %d, want the chooser's pick 1", res.Keeper)
	}
	if len(seen.Files) != 2 {
		t.Errorf("chooser saw %d files, want 2", len(seen.Files))
	}
}

func TestResolve_PromptErrors(t *testing.T) {
	mod := time.Now()
	g := Group{Dest: "d", Files: []classify.FileRecord{rec("/dl/a", mod), rec("/dl/b", mod)}}

	if _, err := Resolve(g, PolicyPrompt, nil); !errors.Is(err, ErrNoChooser) {
		t.Errorf("nil chooser error = %v, want ErrNoChooser", err)
	}

	chooserErr := errors.New("aborted")
	if _, err := Resolve(g, PolicyPrompt, func(Group) (int, error) { return 0, chooserErr }); !errors.Is(err, chooserErr) {
		t.Errorf("chooser error not propagated: %v", err)
	}

	if _, err := Resolve(g, PolicyPrompt, func(Group) (int, error) { return 5, nil }); err == nil {
		t.Error("out-of-range chooser index should fail")
	}
}

func TestResolve_RejectsSkipAndSmallGroups(t *testing.T) {
	mod := time.Now()
	g := Group{Dest: "d", Files: []classify.FileRecord{rec("/dl/a", mod), rec("/dl/b", mod)}}

	if _, err := Resolve(g, PolicySkip, nil); err == nil {
		t.Error("skip policy should not resolve groups")
	}
	single := Group{Dest: "d", Files: []classify.FileRecord{rec("/dl/a", mod)}}
	if _, err := Resolve(single, PolicyForceKeepNewest, nil); err == nil {
		t.Error("single-member group should be rejected")
	}
}
