/*
Package cmd provides the CLI commands for lastrelease.
*/
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lastrelease",
	Short: "Find the last release of a project from its git tags",
	Long: `lastrelease inspects the git tags reachable from the current
checkout, keeps the ones matching a tag format such as v${version}
and reports the one carrying the highest semantic version.

Example:
  lastrelease last                           # Print the last release
  lastrelease last --tag-format 'app-${version}'
  lastrelease last -o json                   # Print it as JSON
  lastrelease check                          # Validate .lastrelease.yaml`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .lastrelease.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print warnings and errors")

	// Add subcommands
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
