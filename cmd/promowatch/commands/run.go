package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"promowatch/internal/config"
	"promowatch/internal/logx"
	"promowatch/internal/pipeline"
)

const pushJob = "promowatch"

var runFlags struct {
	url    string
	dbPath string
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.url, "url", "u", "", "Product page to snapshot (default PRODUCT_URL or the Bose QC Ultra page)")
	runCmd.Flags().StringVarP(&runFlags.dbPath, "db-path", "d", "", "SQLite file, libsql:// or postgres:// URL (default DATABASE_URL)")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--url <product url>] [--db-path <path/to/db>]",
	Short: "Fetches the product page once, stores a snapshot and sends alerts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := cfg.Override(config.Config{ProductURL: runFlags.url, DatabaseURL: runFlags.dbPath})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		p, closeFn, err := pipeline.Build(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		res, runErr := p.Run(ctx, cfg.ProductURL)

		if cfg.PushgatewayURL != "" {
			if err := p.Metrics.Push(ctx, cfg.PushgatewayURL, pushJob); err != nil {
				logx.Warn().Err(err).Str("pushgateway", cfg.PushgatewayURL).Msg("failed to push metrics")
			}
		}
		if runErr != nil {
			return runErr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "snapshot %d: %s (%d promotions, %d skipped, %d flags, %d alerts sent)\n",
			res.SnapshotID, res.Product.Title, len(res.Product.Promotions), res.Skipped, len(res.Flags), res.AlertsSent)
		return nil
	},
}
