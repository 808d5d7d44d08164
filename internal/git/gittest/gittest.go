// Package gittest builds git repositories on disk for tests.
package gittest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a repository living in a temporary directory.
type Repo struct {
	// Dir is the root of the working tree
	Dir string

	t     testing.TB
	repo  *gogit.Repository
	count int
}

// Init creates an empty repository in a new temporary directory.
func Init(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	return &Repo{Dir: dir, t: t, repo: repo}
}

// Repository returns the underlying go-git repository.
func (r *Repo) Repository() *gogit.Repository {
	return r.repo
}

// Commit creates one commit per message on the current branch and returns
// their hashes in order.
func (r *Repo) Commit(messages ...string) []string {
	r.t.Helper()

	w, err := r.repo.Worktree()
	require.NoError(r.t, err)

	hashes := make([]string, 0, len(messages))
	for _, msg := range messages {
		r.count++
		name := fmt.Sprintf("file%d.txt", r.count)
		require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, name), []byte(msg+"\n"), 0644))

		_, err := w.Add(name)
		require.NoError(r.t, err)

		hash, err := w.Commit(msg, &gogit.CommitOptions{Author: r.signature()})
		require.NoError(r.t, err)
		hashes = append(hashes, hash.String())
	}

	return hashes
}

// Tag creates a lightweight tag on HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, r.head(), nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag on HEAD.
func (r *Repo) AnnotatedTag(name, message string) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, r.head(), &gogit.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	require.NoError(r.t, err)
}

// Checkout switches to branch, creating it from HEAD when create is set.
func (r *Repo) Checkout(branch string, create bool) {
	r.t.Helper()

	w, err := r.repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, w.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}))
}

// Branch returns the name of the current branch.
func (r *Repo) Branch() string {
	r.t.Helper()

	ref, err := r.repo.Head()
	require.NoError(r.t, err)
	return ref.Name().Short()
}

func (r *Repo) head() plumbing.Hash {
	r.t.Helper()

	ref, err := r.repo.Head()
	require.NoError(r.t, err)
	return ref.Hash()
}

// signature returns a distinct, increasing timestamp per call so commit
// hashes are stable across runs.
func (r *Repo) signature() *object.Signature {
	r.count++
	return &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.count) * time.Minute),
	}
}
