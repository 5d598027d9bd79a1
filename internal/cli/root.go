// Package cli implements the rundeck-mcp command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "rundeck-mcp",
	Short: "MCP server for Rundeck",
	Long: "rundeck-mcp exposes a Rundeck instance to MCP hosts as typed tools: " +
		"list and inspect jobs, run jobs (when write tools are enabled), and " +
		"inspect executions and their log output.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML configuration file (environment variables override it)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
}
