/*
Package release resolves the last release of a project from its git tags.
*/
package release

import (
	"context"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Release describes the last release found in a repository.
// The zero value means no release was found.
type Release struct {
	// GitHead is the commit the release tag points to
	GitHead string `json:"gitHead,omitempty" yaml:"gitHead,omitempty"`

	// GitTag is the release tag as stored in the repository
	GitTag string `json:"gitTag,omitempty" yaml:"gitTag,omitempty"`

	// Version is the normalized semantic version
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// IsZero reports whether r is the empty release.
func (r Release) IsZero() bool {
	return r == Release{}
}

// Repository is the view of a git repository needed to resolve a release.
type Repository interface {
	// ReachableTags returns the tags pointing to HEAD or one of its ancestors.
	ReachableTags(ctx context.Context) ([]string, error)

	// TagCommit returns the hash of the commit a tag points to.
	TagCommit(ctx context.Context, tag string) (string, error)
}

// Logger receives the informational messages of the resolver.
type Logger interface {
	Log(format string, args ...interface{})
}

// LogFunc adapts a printf-style function to Logger.
type LogFunc func(format string, args ...interface{})

// Log calls f(format, args...).
func (f LogFunc) Log(format string, args ...interface{}) {
	f(format, args...)
}

// Last returns the release with the highest version among the tags of repo
// that match tagFormat.
//
// When no tag matches, Last logs it and returns the empty Release with a nil
// error. Errors from repo are returned as is. Tags are examined in lexical
// order and the first one carrying the highest version wins, so tags that
// only differ by build metadata resolve deterministically.
func Last(ctx context.Context, repo Repository, tagFormat string, logger Logger) (Release, error) {
	format, err := CompileTagFormat(tagFormat)
	if err != nil {
		return Release{}, err
	}

	tags, err := repo.ReachableTags(ctx)
	if err != nil {
		return Release{}, err
	}
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)

	var (
		bestTag     string
		bestVersion *semver.Version
	)
	for _, tag := range sorted {
		v, ok := format.Version(tag)
		if !ok {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			bestTag, bestVersion = tag, v
		}
	}

	if bestVersion == nil {
		logger.Log("No git tag version found")
		return Release{}, nil
	}

	head, err := repo.TagCommit(ctx, bestTag)
	if err != nil {
		return Release{}, err
	}

	version := bestVersion.String()
	logger.Log("Found git tag %s associated with version %s", bestTag, version)

	return Release{
		GitHead: head,
		GitTag:  bestTag,
		Version: version,
	}, nil
}
