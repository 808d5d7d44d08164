package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/lastrelease/internal/config"
	"github.com/oarkflow/lastrelease/internal/git"
	"github.com/oarkflow/lastrelease/internal/release"
)

var (
	lastTagFormat string
	lastDir       string
	lastBackend   string
	lastOutput    string
)

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Print the last release",
	Long: `Print the last release of the repository.

The last release is the tag with the highest semantic version among
the tags that:
  - point to HEAD or one of its ancestors
  - match the tag format, ${version} standing for the version
  - embed a valid semantic version (v3.0 or v2.0.x do not)

Nothing is printed in text mode when no release is found.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("tag-format") {
			cfg.TagFormat = lastTagFormat
		}
		if flags.Changed("dir") {
			cfg.Git.Dir = lastDir
		}
		if flags.Changed("backend") {
			cfg.Git.Backend = lastBackend
		}
		if flags.Changed("output") {
			cfg.Output.Format = lastOutput
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		rel, err := findLast(cmd.Context(), cfg, release.LogFunc(log.Infof))
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), rel, cfg.Output.Format)
	},
}

func init() {
	lastCmd.Flags().StringVar(&lastTagFormat, "tag-format", "", "tag naming template (default v${version})")
	lastCmd.Flags().StringVarP(&lastDir, "dir", "C", "", "repository directory (default .)")
	lastCmd.Flags().StringVar(&lastBackend, "backend", "", "git backend: git or go-git")
	lastCmd.Flags().StringVarP(&lastOutput, "output", "o", "", "output format: text, json or yaml")
}

// findLast opens the configured repository and resolves its last release.
func findLast(ctx context.Context, cfg *config.Config, logger release.Logger) (release.Release, error) {
	log.Debug("Opening repository", "dir", cfg.Git.Dir, "backend", cfg.Git.Backend)

	repo, err := git.Open(ctx, cfg.Git.Dir, git.Backend(cfg.Git.Backend))
	if err != nil {
		return release.Release{}, err
	}

	repo, err = git.IgnoreTags(repo, cfg.Git.IgnoreTags)
	if err != nil {
		return release.Release{}, err
	}

	return release.Last(ctx, repo, cfg.TagFormat, logger)
}

// loadConfig loads the config file given with --config, then the default
// file if present, falling back to the built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err != nil {
			log.Debug("No config file, using defaults")
			return config.Default(), nil
		}
		path = config.DefaultFile
	}

	log.Debug("Loading config", "path", path)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
