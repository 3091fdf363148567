package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbulence-sh/turbulence/internal/discover"
)

// writeTree creates the given files (relative slash paths) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		require.NoError(t, err)

		err = os.WriteFile(path, []byte("content\n"), 0o644)
		require.NoError(t, err)
	}
}

func discoveredPaths(t *testing.T, roots []string, opts discover.Options) []string {
	t.Helper()

	files, err := discover.Discover(roots, opts)
	require.NoError(t, err)

	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = file.Path
	}

	return paths
}

func TestDiscoverFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "main.go", "util.py", "readme.md", "style.css")

	paths := discoveredPaths(t, []string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go", ".py"},
	})

	assert.Equal(t, []string{"main.go", "util.py"}, paths)
}

func TestDiscoverSortsAndSetsExt(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "z.go", "a/deep.go", "m.go")

	files, err := discover.Discover([]string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go"},
	})
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "a/deep.go", files[0].Path)
	assert.Equal(t, "m.go", files[1].Path)
	assert.Equal(t, "z.go", files[2].Path)

	for _, file := range files {
		assert.Equal(t, ".go", file.Ext)
	}
}

func TestDiscoverSkipsDotAndVendorPaths(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"keep.go",
		".hidden.go",
		".git/config.go",
		"vendor/dep/dep.go",
		"node_modules/mod/mod.go",
	)

	paths := discoveredPaths(t, []string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go"},
	})

	assert.Equal(t, []string{"keep.go"}, paths)
}

func TestDiscoverIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "main.go", "main_test.go", "gen/schema.go")

	paths := discoveredPaths(t, []string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go"},
		Ignore:     []string{"*_test.go", "gen/*"},
	})

	assert.Equal(t, []string{"main.go"}, paths)
}

func TestDiscoverDeduplicatesOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "pkg/a.go", "pkg/b.go")

	pkgDir := filepath.Join(dir, "pkg")

	paths := discoveredPaths(t, []string{dir, pkgDir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go"},
	})

	assert.Equal(t, []string{"pkg/a.go", "pkg/b.go"}, paths)
}

func TestDiscoverZeroMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "readme.md")

	files, err := discover.Discover([]string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{".go"},
	})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := discover.Discover(
		[]string{filepath.Join(t.TempDir(), "does-not-exist")},
		discover.Options{Extensions: []string{".go"}},
	)
	require.Error(t, err)
}

func TestDiscoverNoRoots(t *testing.T) {
	_, err := discover.Discover(nil, discover.Options{})
	require.ErrorIs(t, err, discover.ErrNoRoots)
}

func TestDiscoverExtensionNormalization(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.go", "b.GO")

	// Extensions may be given without the leading dot and in any case.
	paths := discoveredPaths(t, []string{dir}, discover.Options{
		RelativeTo: dir,
		Extensions: []string{"go"},
	})

	assert.Equal(t, []string{"a.go", "b.GO"}, paths)
}
