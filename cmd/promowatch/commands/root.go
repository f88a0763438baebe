package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"promowatch/internal/config"
	"promowatch/internal/logx"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "promowatch",
	Short:         "promowatch records Liverpool product snapshots and alerts on notable promotions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logx.Init(logx.LoggerOpts{Environment: cfg.Environment})
		return nil
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
