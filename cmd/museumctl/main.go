// Command museumctl is the operator CLI for the Binhi Heritage Museum:
// schema migrations, content checks and ledger exports.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "museumctl",
		Short:         "Operate the Binhi Heritage Museum backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logger.FromEnv("museumctl", os.Getenv)
			if cmd.Flags().Changed("loglevel") {
				cfg.Level = logLevel
			}
			logger.InitLoggerWithWriter(cfg, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&logLevel, "loglevel", "l", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newMigrateCmd(), newContentCmd(), newExportCmd())
	return root
}
