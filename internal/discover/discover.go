// Package discover enumerates the candidate files a run will measure.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

// ErrNoRoots indicates discovery was invoked without any root directory.
var ErrNoRoots = errors.New("no directories to scan")

// Options controls which files are kept.
type Options struct {
	// RelativeTo is the directory result paths are made relative to,
	// typically the repository root. Empty keeps paths relative to each
	// scanned root.
	RelativeTo string

	// Extensions is the allow-set of file extensions (with leading dot).
	Extensions []string

	// Ignore holds glob patterns matched against both the relative path
	// and the base name; matching files are dropped.
	Ignore []string
}

// Discover walks the given roots and returns the candidate files in
// deterministic ascending path order. Vendored and dot-file paths are
// skipped. Zero matches is not an error; a missing root is.
func Discover(roots []string, opts Options) ([]pipeline.FileRef, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[normalizeExt(ext)] = struct{}{}
	}

	seen := make(map[string]struct{})

	var files []pipeline.FileRef

	for _, root := range roots {
		rootFiles, err := walkRoot(root, allowed, opts)
		if err != nil {
			return nil, err
		}

		for _, file := range rootFiles {
			if _, dup := seen[file.Path]; dup {
				continue
			}

			seen[file.Path] = struct{}{}
			files = append(files, file)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// walkRoot scans one root directory.
func walkRoot(root string, allowed map[string]struct{}, opts Options) ([]pipeline.FileRef, error) {
	info, statErr := os.Stat(root)
	if statErr != nil {
		return nil, fmt.Errorf("scan root: %w", statErr)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q: %w", root, fs.ErrInvalid)
	}

	base := opts.RelativeTo
	if base == "" {
		base = root
	}

	var files []pipeline.FileRef

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if skipDir(rel, entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if ref, keep := classify(rel, allowed, opts.Ignore); keep {
			files = append(files, ref)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %q: %w", root, walkErr)
	}

	return files, nil
}

// skipDir reports whether a directory subtree is excluded wholesale:
// VCS metadata, dot directories, and vendored trees.
func skipDir(rel, name string) bool {
	if rel == "." {
		return false
	}

	if strings.HasPrefix(name, ".") {
		return true
	}

	// enry matches vendor patterns against slash-terminated dir paths.
	return enry.IsVendor(rel + "/")
}

// classify decides whether one file is a candidate and builds its FileRef.
func classify(rel string, allowed map[string]struct{}, ignore []string) (pipeline.FileRef, bool) {
	if enry.IsDotFile(rel) || enry.IsVendor(rel) {
		return pipeline.FileRef{}, false
	}

	ext := strings.ToLower(filepath.Ext(rel))
	if _, ok := allowed[ext]; !ok {
		return pipeline.FileRef{}, false
	}

	if matchesAny(ignore, rel) {
		return pipeline.FileRef{}, false
	}

	return pipeline.FileRef{Path: rel, Ext: ext}, true
}

// matchesAny matches patterns against the relative path and the base name.
// Malformed patterns are treated as non-matching.
func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}

		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}

	return false
}

// normalizeExt lower-cases an extension and ensures the leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
