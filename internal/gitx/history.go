package gitx

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// CommitCountsByPath walks history from HEAD and returns, for each path,
// the number of commits that touched it. Merge commits count when they
// changed the file relative to their first parent. When since is
// non-empty, commits reachable from that revision are excluded, so the
// counts cover only history after the reference point.
func (r *Repository) CommitCountsByPath(since string) (map[string]int, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}
	defer walk.Free()

	walk.Sorting(git2go.SortTopological | git2go.SortTime)

	pushErr := walk.PushHead()
	if pushErr != nil {
		return nil, fmt.Errorf("push HEAD to revwalk: %w", pushErr)
	}

	if since != "" {
		oid, resolveErr := r.resolveCommitOid(since)
		if resolveErr != nil {
			return nil, resolveErr
		}

		hideErr := walk.Hide(oid)
		if hideErr != nil {
			return nil, fmt.Errorf("hide revision %q: %w", since, hideErr)
		}
	}

	counts := make(map[string]int)

	var walkErr error

	iterErr := walk.Iterate(func(commit *git2go.Commit) bool {
		defer commit.Free()

		paths, pathsErr := r.touchedPaths(commit)
		if pathsErr != nil {
			walkErr = pathsErr

			return false
		}

		for _, path := range paths {
			counts[path]++
		}

		return true
	})
	if iterErr != nil {
		return nil, fmt.Errorf("revwalk iterate: %w", iterErr)
	}

	if walkErr != nil {
		return nil, walkErr
	}

	return counts, nil
}

// touchedPaths returns the paths changed by a commit relative to its
// first parent. For an initial commit every file in the tree counts.
func (r *Repository) touchedPaths(commit *git2go.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get commit tree: %w", err)
	}
	defer tree.Free()

	if commit.ParentCount() == 0 {
		return r.treePaths(tree, "")
	}

	parent := commit.Parent(0)
	defer parent.Free()

	parentTree, parentErr := parent.Tree()
	if parentErr != nil {
		return nil, fmt.Errorf("get parent tree: %w", parentErr)
	}
	defer parentTree.Free()

	return r.diffPaths(parentTree, tree)
}

// diffPaths collects the new-side path of every delta between two trees.
func (r *Repository) diffPaths(oldTree, newTree *git2go.Tree) ([]string, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("get diff options: %w", err)
	}

	diff, diffErr := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if diffErr != nil {
		return nil, fmt.Errorf("diff trees: %w", diffErr)
	}
	defer func() {
		_ = diff.Free()
	}()

	numDeltas, numErr := diff.NumDeltas()
	if numErr != nil {
		return nil, fmt.Errorf("get num deltas: %w", numErr)
	}

	paths := make([]string, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			continue
		}

		path := delta.NewFile.Path
		if path == "" {
			path = delta.OldFile.Path
		}

		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// treePaths recursively collects all blob paths in a tree.
func (r *Repository) treePaths(tree *git2go.Tree, prefix string) ([]string, error) {
	var paths []string

	count := tree.EntryCount()

	for i := range count {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		path := entry.Name
		if prefix != "" {
			path = prefix + "/" + path
		}

		switch entry.Type {
		case git2go.ObjectBlob:
			paths = append(paths, path)
		case git2go.ObjectTree:
			subtree, lookupErr := r.repo.LookupTree(entry.Id)
			if lookupErr != nil {
				continue
			}

			subPaths, subErr := r.treePaths(subtree, path)
			subtree.Free()

			if subErr != nil {
				return nil, subErr
			}

			paths = append(paths, subPaths...)
		default:
			// Submodules and other object types are not candidate files.
		}
	}

	return paths, nil
}
