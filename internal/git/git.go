/*
Package git provides read access to the tags of a git repository.
*/
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Backend selects how a repository is accessed.
type Backend string

const (
	// BackendCLI runs the git binary
	BackendCLI Backend = "git"

	// BackendGoGit reads the repository in process with go-git
	BackendGoGit Backend = "go-git"
)

// ErrNotRepository is returned when a directory is not inside a git
// repository.
var ErrNotRepository = errors.New("not a git repository")

// Repository lists tags and resolves them to commits.
type Repository interface {
	// ReachableTags returns the tags pointing to HEAD or one of its ancestors
	ReachableTags(ctx context.Context) ([]string, error)

	// TagCommit returns the hash of the commit a tag points to
	TagCommit(ctx context.Context, tag string) (string, error)
}

// Open opens the repository containing dir with the given backend.
// An empty backend selects BackendCLI.
func Open(ctx context.Context, dir string, backend Backend) (Repository, error) {
	switch backend {
	case "", BackendCLI:
		return OpenCLI(ctx, dir)
	case BackendGoGit:
		return OpenGoGit(dir)
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}

// CLI accesses a repository through the git binary.
type CLI struct {
	dir string
}

// OpenCLI returns a CLI repository rooted at dir.
func OpenCLI(ctx context.Context, dir string) (*CLI, error) {
	if _, err := run(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	return &CLI{dir: dir}, nil
}

// ReachableTags returns the tags merged into HEAD.
func (c *CLI) ReachableTags(ctx context.Context) ([]string, error) {
	output, err := run(ctx, c.dir, "tag", "--merged", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tags = append(tags, line)
	}

	return tags, nil
}

// TagCommit returns the commit a tag points to, peeling annotated tags.
func (c *CLI) TagCommit(ctx context.Context, tag string) (string, error) {
	output, err := run(ctx, c.dir, "rev-list", "-1", tagPrefix+tag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", tag, err)
	}
	return strings.TrimSpace(output), nil
}

// run executes a git command in dir and returns the output
func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
