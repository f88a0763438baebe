package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"promowatch/internal/db"
	"promowatch/internal/repository"
	"promowatch/internal/review"
)

var historyFlags struct {
	dbPath    string
	productID uint64
	limit     int
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlags.dbPath, "db-path", "d", "", "SQLite file, libsql:// or postgres:// URL (default DATABASE_URL)")
	historyCmd.Flags().Uint64VarP(&historyFlags.productID, "product-id", "p", 0, "Only show this product")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "Number of snapshots, newest first (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--db-path <path/to/db>] [--product-id <id>] [--limit <n>]",
	Short: "Lists stored snapshots.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := cfg.DatabaseURL
		if historyFlags.dbPath != "" {
			dsn = historyFlags.dbPath
		}
		dsn, err := db.ResolvePath(dsn)
		if err != nil {
			return err
		}

		conn, dialect, err := db.Open(dsn)
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := cmd.Context()
		if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
			return err
		}

		repo := &repository.SQLRepository{DB: conn, Dialect: dialect}
		snaps, err := repo.History(ctx, historyFlags.productID, historyFlags.limit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		renderHistory(cmd.OutOrStdout(), snaps)
		return nil
	},
}

func renderHistory(w io.Writer, snaps []repository.Snapshot) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"#", "Recorded (GMT-6)", "Product", "Title", "List", "Promo", "Discount %", "Promotions", "Flags"})
	for _, s := range snaps {
		p := s.Product
		t.AppendRow(table.Row{
			s.ID,
			p.TimeRecordedGMTMinus6,
			p.ProductID,
			p.Title,
			fmt.Sprintf("%.2f", p.ListPrice),
			fmt.Sprintf("%.2f", p.PromoPrice),
			fmt.Sprintf("%g", p.DiscountPercentage),
			len(p.Promotions),
			len(review.Promotions(p)),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", len(snaps)})
	t.Render()
}
