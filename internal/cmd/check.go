package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oarkflow/lastrelease"
	"github.com/oarkflow/lastrelease/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration file",
	Long: `Check if the configuration file is valid.

This validates:
  - YAML syntax
  - Include statements
  - The tag format holds exactly one ${version}
  - The git backend and output format
  - The ignore_tags regular expressions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			configPath = config.DefaultFile
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", configPath)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration file %s is valid\n", configPath)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Long: `Initialize a new .lastrelease.yaml configuration file.

This creates a basic configuration file that you can customize
for your project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.DefaultFile
		if cfgFile != "" {
			configPath = cfgFile
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		if err := os.WriteFile(configPath, []byte(config.DefaultTemplate()), 0644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", configPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, and build date of lastrelease.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lastrelease %s\n", lastrelease.Version)
		if lastrelease.GitCommit != "" {
			fmt.Fprintf(out, "  Commit: %s\n", lastrelease.GitCommit)
		}
		if lastrelease.BuildDate != "" {
			fmt.Fprintf(out, "  Built:  %s\n", lastrelease.BuildDate)
		}
	},
}
