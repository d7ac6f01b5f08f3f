// Package cache persists the last-seen fingerprint (pkgs/fingerprint) for
// each watched script path, so `lox --watch` can tell a duplicate
// filesystem event (most editors emit more than one per save) from an
// actual content change, across both a single watch session and
// successive CLI invocations.
package cache

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Store is a small on-disk map of script path to last-seen fingerprint.
type Store struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

// Open loads the store at path if it exists; a missing or unreadable
// file simply starts an empty store rather than failing — the cache is
// an optimization, never a correctness requirement.
func Open(path string) *Store {
	s := &Store{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = cbor.Unmarshal(raw, &s.data)
	return s
}

// Fingerprint returns the last fingerprint stored for key, if any.
func (s *Store) Fingerprint(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fp, ok := s.data[key]
	return fp, ok
}

// Set records fingerprint for key and persists the store. Persist
// failures are not fatal to the caller — watch mode keeps working with
// an in-memory-only cache for the rest of the session.
func (s *Store) Set(key, fingerprint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = fingerprint

	raw, err := cbor.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// DefaultPath returns the default cache file location under the user's
// cache directory, creating the containing directory if needed.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir = dir + "/lox"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir + "/fingerprints.cbor", nil
}
