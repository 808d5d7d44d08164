/*
Package lastrelease finds the last release of a project from its git tag
history.

Given a tag format such as "v${version}", lastrelease lists the tags reachable
from the current checkout, keeps the ones that embed a valid semantic version
and reports the highest of them together with the commit it points to:

	$ lastrelease last --tag-format 'v${version}' -o json
	{"gitHead":"f3c1a2...","gitTag":"v2.0.0","version":"2.0.0"}

Tags created on branches that are not ancestors of the current checkout are
never considered.

# Configuration

lastrelease reads an optional YAML file (.lastrelease.yaml) holding the tag
format, the repository directory, the git backend to use and tags to ignore.
Command line flags override the file.

# Usage

	lastrelease last              # Print the last release
	lastrelease check             # Validate the configuration file
	lastrelease init              # Write a starter configuration file
	lastrelease version           # Print version information
*/
package lastrelease

// Version is the current version of lastrelease
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
