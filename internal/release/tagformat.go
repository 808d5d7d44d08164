package release

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Placeholder marks where the version sits in a tag format.
const Placeholder = "${version}"

// ErrTagFormat is returned for tag formats that do not hold exactly one
// placeholder.
var ErrTagFormat = errors.New("invalid tag format")

// semverPattern matches a semantic version as defined by semver.org 2.0.0.
// All groups are non-capturing.
const semverPattern = `(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)\.(?:0|[1-9]\d*)` +
	`(?:-(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*)?` +
	`(?:\+[0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*)?`

// TagFormat is a compiled tag format.
type TagFormat struct {
	format string
	re     *regexp.Regexp
}

// CompileTagFormat compiles a tag format such as "v${version}".
// Everything around the placeholder is matched literally.
func CompileTagFormat(format string) (*TagFormat, error) {
	if n := strings.Count(format, Placeholder); n != 1 {
		return nil, fmt.Errorf("%w %q: want exactly one %s, found %d", ErrTagFormat, format, Placeholder, n)
	}

	prefix, suffix, _ := strings.Cut(format, Placeholder)
	re, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + "(" + semverPattern + ")" + regexp.QuoteMeta(suffix) + "$")
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrTagFormat, format, err)
	}

	return &TagFormat{format: format, re: re}, nil
}

// String returns the source tag format.
func (f *TagFormat) String() string {
	return f.format
}

// Version extracts the version embedded in tag. It reports false when tag
// does not follow the format or the embedded value is not a valid
// semantic version.
func (f *TagFormat) Version(tag string) (*semver.Version, bool) {
	m := f.re.FindStringSubmatch(tag)
	if m == nil {
		return nil, false
	}

	v, err := semver.StrictNewVersion(m[1])
	if err != nil {
		return nil, false
	}
	return v, true
}

// Tag renders the tag name of version v.
func (f *TagFormat) Tag(v *semver.Version) string {
	return strings.Replace(f.format, Placeholder, v.String(), 1)
}
