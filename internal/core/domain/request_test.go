package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRequest(t *testing.T) {
	t.Run("compiles all patterns for a valid request", func(t *testing.T) {
		root := t.TempDir()

		req, err := NewSearchRequest([]string{root}, `.*\.txt`, `^ignore_.*`, "important", true)

		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, []string{root}, req.Roots)
		assert.True(t, req.Include.MatchString("a.txt"))
		assert.True(t, req.Exclude.MatchString("ignore_a.txt"))
		assert.True(t, req.Content.MatchString("an important deadline"))
		assert.True(t, req.IncludeHidden)
	})

	t.Run("exclusion and content patterns are optional", func(t *testing.T) {
		root := t.TempDir()

		req, err := NewSearchRequest([]string{root}, `.*`, "", "", false)

		require.NoError(t, err)
		assert.Nil(t, req.Exclude)
		assert.Nil(t, req.Content)
		assert.False(t, req.IncludeHidden)
	})

	t.Run("rejects empty root list", func(t *testing.T) {
		_, err := NewSearchRequest(nil, `.*`, "", "", false)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non-existent root", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "no-such-dir")

		_, err := NewSearchRequest([]string{missing}, `.*`, "", "", false)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects a root that is a regular file", func(t *testing.T) {
		root := t.TempDir()
		file := filepath.Join(root, "plain.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		_, err := NewSearchRequest([]string{file}, `.*`, "", "", false)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("validates every root, not just the first", func(t *testing.T) {
		good := t.TempDir()
		bad := filepath.Join(t.TempDir(), "gone")

		_, err := NewSearchRequest([]string{good, bad}, `.*`, "", "", false)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects empty inclusion pattern", func(t *testing.T) {
		_, err := NewSearchRequest([]string{t.TempDir()}, "", "", "", false)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed inclusion pattern", func(t *testing.T) {
		_, err := NewSearchRequest([]string{t.TempDir()}, `[unclosed`, "", "", false)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed exclusion pattern", func(t *testing.T) {
		_, err := NewSearchRequest([]string{t.TempDir()}, `.*`, `(`, "", false)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed content pattern", func(t *testing.T) {
		_, err := NewSearchRequest([]string{t.TempDir()}, `.*`, "", `*`, false)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
