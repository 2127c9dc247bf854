// Package hash provides content hashing for duplicate detection.
//
// Two files are considered duplicates only when their full-content
// SHA-256 digests match; size comparison is a cheap pre-filter done by
// the caller before paying for a digest. A fake implementation lets the
// planner be tested without hand-crafting colliding files.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher computes content digests for files.
type Hasher interface {
	// HashFile returns the hex digest of the file's full content.
	HashFile(path string) (string, error)
}

// SHA256Hasher is the production Hasher.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile streams the file through SHA-256 and returns the hex digest.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	digest := sha256.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// FakeHasher returns scripted digests for testing.
type FakeHasher struct {
	hashes map[string]string
	errs   map[string]error
}

// NewFakeHasher creates an empty FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
		errs:   make(map[string]error),
	}
}

// SetHash scripts the digest returned for a path.
func (h *FakeHasher) SetHash(path, digest string) {
	h.hashes[path] = digest
}

// SetError scripts a failure for a path, simulating an unreadable file.
func (h *FakeHasher) SetError(path string, err error) {
	h.errs[path] = err
}

// HashFile returns the scripted digest, or a digest derived from the
// path so unscripted files never collide by accident.
func (h *FakeHasher) HashFile(path string) (string, error) {
	if err, ok := h.errs[path]; ok {
		return "", err
	}
	if digest, ok := h.hashes[path]; ok {
		return digest, nil
	}
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:]), nil
}
