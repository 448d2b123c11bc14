// Package hash fingerprints file contents for tree comparison.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// UnreadablePrefix marks a fingerprint that stands in for a file that could not be read.
// Two unreadable files compare equal only when the failed operation and its cause match;
// the path is never part of the sentinel.
const UnreadablePrefix = "unreadable:"

// Hasher computes content fingerprints.
type Hasher interface {
	// HashFile returns the fingerprint of the file at path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

var _ Hasher = (*SHA256Hasher)(nil)

// HashFile returns the hex-encoded SHA-256 of the file contents.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Fingerprint never fails: read errors become an UnreadablePrefix sentinel.
func Fingerprint(h Hasher, path string) string {
	sum, err := h.HashFile(path)
	if err != nil {
		return Unreadable(err)
	}
	return sum
}

// Unreadable builds the sentinel for err, stripping the path of any *fs.PathError in its chain.
func Unreadable(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return UnreadablePrefix + pathErr.Op + ": " + pathErr.Err.Error()
	}
	return UnreadablePrefix + err.Error()
}

// IsUnreadable reports whether fingerprint is an unreadable sentinel.
func IsUnreadable(fingerprint string) bool {
	return strings.HasPrefix(fingerprint, UnreadablePrefix)
}
