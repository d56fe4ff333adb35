package main

import (
	"fmt"

	"purchasing-bridge/internal/logger"

	"github.com/spf13/cobra"
)

// Demo documents: one submitted purchase order and the receipt recorded
// against it, enough to exercise invoice creation end to end.
const seedSQL = `
INSERT INTO purchase_orders (name, supplier, posting_date, company, currency)
VALUES ('PO-DEMO-0001', 'SUP-0001', '2024-01-10', 'Batasku', 'IDR')
ON CONFLICT (name) DO NOTHING;

INSERT INTO purchase_order_items (name, parent, idx, item_code, qty, rate, warehouse) VALUES
('POI-DEMO-0001', 'PO-DEMO-0001', 1, 'BRICK-RED',  1000, 1500, 'Gudang Utama - B'),
('POI-DEMO-0002', 'PO-DEMO-0001', 2, 'BRICK-GREY',  500, 1750, 'Gudang Utama - B')
ON CONFLICT (name) DO NOTHING;

INSERT INTO purchase_receipts (name, supplier, supplier_name, posting_date, company, currency, note)
VALUES ('PR-DEMO-0001', 'SUP-0001', 'PT Sumber Bata', '2024-01-15', 'Batasku', 'IDR', 'Partial delivery, remainder next week')
ON CONFLICT (name) DO NOTHING;

INSERT INTO purchase_receipt_items
  (name, parent, idx, item_code, item_name, description, qty,
   received_qty, rejected_qty, accepted_qty, billed_qty, outstanding_qty,
   uom, rate, amount, warehouse, purchase_order, purchase_order_item) VALUES
('PRI-DEMO-0001', 'PR-DEMO-0001', 1, 'BRICK-RED', 'Red Clay Brick', 'Red clay brick, standard size',
 800, 800, 20, 780, 0, 780, 'Nos', 1500, 1200000, 'Gudang Utama - B', 'PO-DEMO-0001', 'POI-DEMO-0001'),
('PRI-DEMO-0002', 'PR-DEMO-0001', 2, 'BRICK-GREY', 'Grey Concrete Brick', 'Grey concrete brick, standard size',
 500, NULL, NULL, 500, 0, 500, 'Nos', 1750, 875000, 'Gudang Utama - B', 'PO-DEMO-0001', 'POI-DEMO-0002')
ON CONFLICT (name) DO NOTHING;
`

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo receipt and order documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("seed")

		pool, ctx, err := connect(cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		if _, err := pool.Exec(ctx, seedSQL); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		log.Info().Msg("demo data loaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
