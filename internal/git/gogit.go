package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const tagPrefix = "refs/tags/"

// GoGit reads a repository in process.
type GoGit struct {
	repo *gogit.Repository
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string) (*GoGit, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return NewGoGit(repo), nil
}

// NewGoGit wraps an already opened repository.
func NewGoGit(repo *gogit.Repository) *GoGit {
	return &GoGit{repo: repo}
}

// ReachableTags returns the tags whose commit is HEAD or one of its ancestors.
func (g *GoGit) ReachableTags(ctx context.Context) ([]string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	ancestors, err := g.ancestors(ctx, head.Hash())
	if err != nil {
		return nil, err
	}

	iter, err := g.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), tagPrefix)
		hash, err := g.peel(ref.Hash())
		if err != nil {
			return fmt.Errorf("failed to peel tag %s: %w", name, err)
		}
		if _, ok := ancestors[hash]; ok {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// TagCommit returns the commit a tag points to, peeling annotated tags.
func (g *GoGit) TagCommit(ctx context.Context, tag string) (string, error) {
	ref, err := g.repo.Tag(tag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", tag, err)
	}

	hash, err := g.peel(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to peel tag %s: %w", tag, err)
	}

	commit, err := g.repo.CommitObject(hash)
	if err != nil {
		return "", fmt.Errorf("tag %s does not point to a commit: %w", tag, err)
	}

	return commit.Hash.String(), nil
}

// ancestors returns the set of commits reachable from head, head included.
func (g *GoGit) ancestors(ctx context.Context, head plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := g.repo.Log(&gogit.LogOptions{From: head})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return seen, nil
}

// peel follows annotated tags until it reaches a non-tag object.
func (g *GoGit) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	for {
		tag, err := g.repo.TagObject(hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return hash, nil
		}
		if err != nil {
			return plumbing.ZeroHash, err
		}
		hash = tag.Target
	}
}
