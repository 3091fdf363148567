// Package gitx wraps the libgit2 operations turbulence needs: opening a
// repository and walking its history to count commits per path.
package gitx

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNotACommit indicates a revision resolved to an object that cannot be
// peeled to a commit.
var ErrNotACommit = errors.New("revision does not point to a commit")

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// Open opens the git repository at the given path.
func Open(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the repository working directory path.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// resolveCommitOid resolves a revision string (branch, tag, or hash) to
// the object id of the commit it points to.
func (r *Repository) resolveCommitOid(rev string) (*git2go.Oid, error) {
	obj, err := r.repo.RevparseSingle(rev)
	if err != nil {
		return nil, fmt.Errorf("resolve revision %q: %w", rev, err)
	}
	defer obj.Free()

	peeled, peelErr := obj.Peel(git2go.ObjectCommit)
	if peelErr != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotACommit, rev)
	}
	defer peeled.Free()

	return peeled.Id(), nil
}
