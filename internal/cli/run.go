package cli

import (
	"github.com/spf13/cobra"

	"github.com/ehsaniara/rundeck-mcp/internal/mcpserver"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/client"
	"github.com/ehsaniara/rundeck-mcp/pkg/config"
	"github.com/ehsaniara/rundeck-mcp/pkg/logger"
)

func newRunCmd() *cobra.Command {
	var enableWriteTools bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the MCP server on stdio",
		Long: "Starts the MCP server with read-only tools enabled by default. " +
			"Use --enable-write-tools to also enable job execution.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if enableWriteTools {
				cfg.WriteEnabled = true
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			if level, err := logger.ParseLevel(cfg.Logging.Level); err == nil {
				logger.SetLevel(level)
			}

			log := logger.WithField("component", "cli")
			log.Info("starting rundeck-mcp",
				"url", cfg.BaseURL,
				"apiVersion", cfg.APIVersion,
				"writeEnabled", cfg.WriteEnabled)

			service := rundeck.NewService(client.New(cfg), cfg.WriteEnabled)
			return mcpserver.New(service).ServeStdio()
		},
	}

	cmd.Flags().BoolVar(&enableWriteTools, "enable-write-tools", false,
		"Enable write tools (run_job); off by default")
	cmd.Flags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error); overrides configuration")

	return cmd
}
