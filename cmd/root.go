package cmd

import (
	"fmt"
	"os"

	"craftwarden/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "craftwarden",
	Short: "Craftwarden autocrafting daemon",
	Long: `Craftwarden keeps a crafting network stocked: it watches the
network inventory, compares it against a catalog of wanted quantities
and dispatches crafting jobs for whatever is missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format for CLI error reporting, regardless of the
		// configured daemon format.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
