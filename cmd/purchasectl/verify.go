package main

import (
	"fmt"

	"purchasing-bridge/internal/logger"

	"github.com/spf13/cobra"
)

var expectedTables = []string{
	"purchase_receipts",
	"purchase_receipt_items",
	"purchase_orders",
	"purchase_order_items",
	"purchase_invoices",
	"purchase_invoice_items",
	"naming_series",
	"error_logs",
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check database connectivity and schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("verify")

		pool, ctx, err := connect(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		var missing []string
		for _, table := range expectedTables {
			var exists bool
			if err := pool.QueryRow(ctx,
				"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
			).Scan(&exists); err != nil {
				return fmt.Errorf("check table %s: %w", table, err)
			}
			if !exists {
				missing = append(missing, table)
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf("missing tables (run purchasectl migrate): %v", missing)
		}
		log.Info().Int("tables", len(expectedTables)).Msg("schema verified")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
