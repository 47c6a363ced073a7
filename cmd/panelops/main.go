package main

import (
	"context"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/panelops/panelops/adapters/drivers/backend/apache2"
	_ "github.com/panelops/panelops/adapters/drivers/backend/bind9"
	_ "github.com/panelops/panelops/adapters/drivers/backend/phpfpm"
	"github.com/panelops/panelops/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "panelops",
		Short:   "PanelOps CLI",
		Long:    "PanelOps CLI",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv("PANELOPS_DB_URL")
	if defaultDB == "" {
		defaultDB = "sqlite:panelops.db"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env PANELOPS_DB_URL) (sqlite:/path/to.db | memory:)")

	defaultConfig := os.Getenv("PANELOPS_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "panelops.yml"
	}
	cmd.PersistentFlags().String("config", defaultConfig, "Configuration file (env PANELOPS_CONFIG)")

	cmd.PersistentFlags().String("log-format", "text", "Log format (text|json) (env PANELOPS_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-file", "", "Log file path (- for stderr, none to disable) (env PANELOPS_LOG_FILE)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("PANELOPS_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		logFile, _ := c.Flags().GetString("log-file")
		if env := os.Getenv("PANELOPS_LOG_FILE"); env != "" {
			logFile = env
		}
		level := slog.LevelInfo
		if debug, _ := c.Flags().GetBool("debug"); debug {
			level = slog.LevelDebug
		}
		w := logging.NewWriter(&logging.FileConfig{Path: logFile})
		l, err := logging.NewWithWriter(format, level, w)
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdDomain())
	cmd.AddCommand(newCmdRecord())
	cmd.AddCommand(newCmdZone())
	cmd.AddCommand(newCmdSite())
	cmd.AddCommand(newCmdWebApp())
	cmd.AddCommand(newCmdDeploy())
	cmd.AddCommand(newCmdTraffic())
	return cmd
}

func main() {
	// Optional .env bootstrap for local development.
	_ = godotenv.Load()
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
