/*
Package config provides configuration loading and validation for lastrelease.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/lastrelease/internal/git"
	"github.com/oarkflow/lastrelease/internal/release"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = ".lastrelease.yaml"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete lastrelease configuration
type Config struct {
	// TagFormat is the tag naming template, e.g. v${version}
	TagFormat string `yaml:"tag_format,omitempty"`

	// Include other configuration files
	Includes []string `yaml:"includes,omitempty"`

	// Git configuration
	Git GitConfig `yaml:"git,omitempty"`

	// Output configuration
	Output Output `yaml:"output,omitempty"`
}

// GitConfig contains git-related configuration
type GitConfig struct {
	// Dir is the directory of the repository
	Dir string `yaml:"dir,omitempty"`

	// Backend is the git access method (git, go-git)
	Backend string `yaml:"backend,omitempty"`

	// IgnoreTags for filtering tags
	IgnoreTags []string `yaml:"ignore_tags,omitempty"`
}

// Output controls how the release is printed
type Output struct {
	// Format of the output (text, json, yaml)
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		TagFormat: "v" + release.Placeholder,
		Git: GitConfig{
			Dir:     ".",
			Backend: string(git.BackendCLI),
		},
		Output: Output{
			Format: FormatText,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.SetDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = []byte(expandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Process includes
	baseDir := filepath.Dir(path)
	for _, include := range cfg.Includes {
		includePath := include
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(baseDir, include)
		}

		// Support glob patterns
		matches, err := filepath.Glob(includePath)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %s: %w", include, err)
		}

		for _, match := range matches {
			includeCfg, err := load(match)
			if err != nil {
				return nil, fmt.Errorf("failed to load include %s: %w", match, err)
			}

			if err := mergo.Merge(&cfg, includeCfg, mergo.WithAppendSlice); err != nil {
				return nil, fmt.Errorf("failed to merge include %s: %w", match, err)
			}
		}
	}

	return &cfg, nil
}

// SetDefaults fills the unset fields from Default
func (c *Config) SetDefaults() error {
	if err := mergo.Merge(c, Default()); err != nil {
		return fmt.Errorf("failed to apply defaults: %w", err)
	}
	return nil
}

// expandEnv expands environment variables, leaving the version placeholder
// in place.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if "${"+key+"}" == release.Placeholder {
			return release.Placeholder
		}
		return os.Getenv(key)
	})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.TagFormat == "" {
		return fmt.Errorf("tag_format is required")
	}
	if _, err := release.CompileTagFormat(c.TagFormat); err != nil {
		return fmt.Errorf("tag_format: %w", err)
	}

	switch git.Backend(c.Git.Backend) {
	case "", git.BackendCLI, git.BackendGoGit:
	default:
		return fmt.Errorf("git.backend: unknown backend %q", c.Git.Backend)
	}

	for i, pattern := range c.Git.IgnoreTags {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("git.ignore_tags[%d]: %w", i, err)
		}
	}

	switch c.Output.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}

	return nil
}

// DefaultTemplate returns the default configuration template
func DefaultTemplate() string {
	return `# lastrelease configuration file
# See https://github.com/oarkflow/lastrelease for documentation

# Tag naming template. ${version} marks where the semantic version sits;
# everything else is matched literally.
tag_format: v${version}

# Other configuration files to merge in (glob patterns allowed)
# includes:
#   - .lastrelease.d/*.yaml

git:
  # Repository directory
  dir: .

  # How to read the repository: git (the git binary) or go-git (in process)
  backend: git

  # Tags matching any of these regular expressions are ignored
  ignore_tags:
    - "^nightly-"

output:
  # text, json or yaml
  format: text
`
}
