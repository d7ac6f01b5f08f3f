package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/lox/pkgs/cache"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.cbor")
	store := cache.Open(path)

	_, ok := store.Fingerprint("anything")
	assert.False(t, ok)
}

func TestSetAndFingerprintRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fingerprints.cbor")
	store := cache.Open(path)

	require.NoError(t, store.Set("/script.lox", "deadbeef"))

	fp, ok := store.Fingerprint("/script.lox")
	require.True(t, ok)
	assert.Equal(t, "deadbeef", fp)
}

func TestSetPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fingerprints.cbor")
	require.NoError(t, cache.Open(path).Set("/script.lox", "cafef00d"))

	reopened := cache.Open(path)
	fp, ok := reopened.Fingerprint("/script.lox")
	require.True(t, ok)
	assert.Equal(t, "cafef00d", fp)
}

func TestDefaultPathCreatesDirectory(t *testing.T) {
	path, err := cache.DefaultPath()
	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(path))
}
