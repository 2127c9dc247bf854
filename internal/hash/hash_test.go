package hash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSHA256Hasher_HashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h := NewSHA256Hasher()
	got, err := h.HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error: %v", err)
	}
	// sha256("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("HashFile() = %s, want %s", got, want)
	}
}

func TestSHA256Hasher_SameContentSameDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	c := filepath.Join(dir, "c.txt")
	for path, content := range map[string]string{a: "same", b: "same", c: "different"} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	h := NewSHA256Hasher()
	ha, _ := h.HashFile(a)
	hb, _ := h.HashFile(b)
	hc, _ := h.HashFile(c)
	if ha != hb {
		t.Error("identical content produced different digests")
	}
	if ha == hc {
		t.Error("different content produced identical digests")
	}
}

func TestSHA256Hasher_MissingFile(t *testing.T) {
	h := NewSHA256Hasher()
	if _, err := h.HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFakeHasher(t *testing.T) {
	h := NewFakeHasher()
	h.SetHash("/a", "digest1")
	h.SetHash("/b", "digest1")
	failure := errors.New("permission denied")
	h.SetError("/c", failure)

	ga, _ := h.HashFile("/a")
	gb, _ := h.HashFile("/b")
	if ga != "digest1" {
		t.Errorf("HashFile(/a) = %s, want digest1", ga)
	}
	if ga != gb {
		t.Error("scripted collision not honored")
	}
	if _, err := h.HashFile("/c"); !errors.Is(err, failure) {
		t.Errorf("HashFile(/c) error = %v, want scripted failure", err)
	}

	// Unscripted paths get distinct path-derived digests.
	gx, _ := h.HashFile("/x")
	gy, _ := h.HashFile("/y")
	if gx == gy || gx == "" {
		t.Error("unscripted paths should hash to distinct digests")
	}
}
