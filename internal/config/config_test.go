package config

import (
	"os"
	"path/filepath"
	"testing"
)

func testPaths(t *testing.T) *Paths {
	t.Helper()
	root := t.TempDir()
	return &Paths{Root: root, ConfigFile: filepath.Join(root, "config.toml")}
}

func TestDefaultPaths_EnvOverride(t *testing.T) {
	t.Setenv("FASTSORT_ROOT", "/custom/root")
	paths, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths() error: %v", err)
	}
	if paths.Root != "/custom/root" {
		t.Errorf("Root = %s, want /custom/root", paths.Root)
	}
	if paths.ConfigFile != "/custom/root/config.toml" {
		t.Errorf("ConfigFile = %s", paths.ConfigFile)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	paths := testPaths(t)
	cfg, err := Load(paths)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RulesFile != filepath.Join(paths.Root, "rules.conf") {
		t.Errorf("RulesFile = %s", cfg.RulesFile)
	}
	if cfg.DedupPolicy != "skip" {
		t.Errorf("DedupPolicy = %s, want skip", cfg.DedupPolicy)
	}
	if cfg.PreviewSampleSize != 5 {
		t.Errorf("PreviewSampleSize = %d, want 5", cfg.PreviewSampleSize)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	paths := testPaths(t)
	text := "dedup_policy = \"force-newest\"\n"
	if err := os.WriteFile(paths.ConfigFile, []byte(text), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(paths)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DedupPolicy != "force-newest" {
		t.Errorf("DedupPolicy = %s", cfg.DedupPolicy)
	}
	if cfg.LogDir != filepath.Join(paths.Root, "logs") {
		t.Errorf("LogDir default lost: %s", cfg.LogDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed toml", "dedup_policy = \n"},
		{"unknown policy", "dedup_policy = \"maybe\"\n"},
		{"bad sample size", "preview_sample_size = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := testPaths(t)
			if err := os.WriteFile(paths.ConfigFile, []byte(tt.text), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(paths); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestWriteSample(t *testing.T) {
	paths := testPaths(t)

	created, err := WriteSample(paths)
	if err != nil {
		t.Fatalf("WriteSample() error: %v", err)
	}
	if !created {
		t.Fatal("expected sample to be created")
	}

	// Sample is all comments, so loading it yields defaults.
	if _, err := Load(paths); err != nil {
		t.Errorf("Load(sample) error: %v", err)
	}

	created, err = WriteSample(paths)
	if err != nil || created {
		t.Errorf("second WriteSample() = (%v, %v), want (false, nil)", created, err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	paths := testPaths(t)
	cfg := Defaults(paths.Root)
	if err := EnsureDirectories(paths, cfg); err != nil {
		t.Fatalf("EnsureDirectories() error: %v", err)
	}
	if fi, err := os.Lstat(cfg.LogDir); err != nil || !fi.IsDir() {
		t.Errorf("log dir not created: %v", err)
	}
}
