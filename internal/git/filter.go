package git

import (
	"context"
	"fmt"
	"regexp"
)

// filtered hides tags matching any of its patterns.
type filtered struct {
	Repository
	ignore []*regexp.Regexp
}

// IgnoreTags returns a Repository whose ReachableTags omits the tags matching
// any of patterns. repo is returned unchanged when patterns is empty.
func IgnoreTags(repo Repository, patterns []string) (Repository, error) {
	if len(patterns) == 0 {
		return repo, nil
	}

	f := &filtered{Repository: repo}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %s: %w", pattern, err)
		}
		f.ignore = append(f.ignore, re)
	}

	return f, nil
}

func (f *filtered) ReachableTags(ctx context.Context) ([]string, error) {
	tags, err := f.Repository.ReachableTags(ctx)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, tag := range tags {
		if !f.ignored(tag) {
			result = append(result, tag)
		}
	}

	return result, nil
}

func (f *filtered) ignored(tag string) bool {
	for _, re := range f.ignore {
		if re.MatchString(tag) {
			return true
		}
	}
	return false
}
