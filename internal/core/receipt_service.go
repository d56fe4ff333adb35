package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReceiptService reads purchase receipts from the document store. It never
// mutates the store.
type ReceiptService interface {
	// Exists reports whether a receipt with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// GetReceipt loads a receipt header with all its lines in stored order.
	GetReceipt(ctx context.Context, name string) (*PurchaseReceipt, error)

	// MatchReceiptLine looks up the receipt line matching
	// (parent, name, item_code) and returns its identifier, or nil when no
	// line matches.
	MatchReceiptLine(ctx context.Context, receipt, lineName, itemCode string) (*string, error)

	// LineQuantities returns the stored received/rejected quantities of a
	// receipt line by its identifier. Absent store values come back nil.
	LineQuantities(ctx context.Context, lineName string) (ReceiptLineQuantities, error)
}

type receiptService struct {
	pool *pgxpool.Pool
}

// NewReceiptService constructs a ReceiptService backed by PostgreSQL.
func NewReceiptService(pool *pgxpool.Pool) ReceiptService {
	return &receiptService{pool: pool}
}

func (s *receiptService) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM purchase_receipts WHERE name = $1)", name,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check purchase receipt %s: %w", name, err)
	}
	return exists, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, name string) (*PurchaseReceipt, error) {
	pr := &PurchaseReceipt{}
	if err := s.pool.QueryRow(ctx, `
		SELECT name, supplier, supplier_name, posting_date, company, currency, note, docstatus
		FROM purchase_receipts
		WHERE name = $1`,
		name,
	).Scan(
		&pr.Name, &pr.Supplier, &pr.SupplierName, &pr.PostingDate,
		&pr.Company, &pr.Currency, &pr.Note, &pr.DocStatus,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase receipt %s not found", name)
		}
		return nil, fmt.Errorf("get purchase receipt %s: %w", name, err)
	}

	items, err := s.fetchItems(ctx, name)
	if err != nil {
		return nil, err
	}
	pr.Items = items
	return pr, nil
}

func (s *receiptService) MatchReceiptLine(ctx context.Context, receipt, lineName, itemCode string) (*string, error) {
	var matched string
	err := s.pool.QueryRow(ctx, `
		SELECT name FROM purchase_receipt_items
		WHERE parent = $1 AND name = $2 AND item_code = $3`,
		receipt, lineName, itemCode,
	).Scan(&matched)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("match receipt line %s/%s: %w", receipt, lineName, err)
	}
	return &matched, nil
}

func (s *receiptService) LineQuantities(ctx context.Context, lineName string) (ReceiptLineQuantities, error) {
	var q ReceiptLineQuantities
	err := s.pool.QueryRow(ctx,
		"SELECT received_qty, rejected_qty FROM purchase_receipt_items WHERE name = $1",
		lineName,
	).Scan(&q.Received, &q.Rejected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ReceiptLineQuantities{}, nil
		}
		return ReceiptLineQuantities{}, fmt.Errorf("fetch receipt line quantities %s: %w", lineName, err)
	}
	return q, nil
}

// fetchItems returns all lines of a receipt ordered by idx.
func (s *receiptService) fetchItems(ctx context.Context, receipt string) ([]PurchaseReceiptItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT name, parent, idx, item_code, item_name, description,
		       qty, received_qty, rejected_qty, accepted_qty, billed_qty, outstanding_qty,
		       uom, rate, amount, warehouse, purchase_order, purchase_order_item
		FROM purchase_receipt_items
		WHERE parent = $1
		ORDER BY idx`,
		receipt,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch receipt items for %s: %w", receipt, err)
	}
	defer rows.Close()

	var items []PurchaseReceiptItem
	for rows.Next() {
		var it PurchaseReceiptItem
		if err := rows.Scan(
			&it.Name, &it.Parent, &it.Idx, &it.ItemCode, &it.ItemName, &it.Description,
			&it.Qty, &it.ReceivedQty, &it.RejectedQty, &it.AcceptedQty, &it.BilledQty, &it.OutstandingQty,
			&it.UOM, &it.Rate, &it.Amount, &it.Warehouse, &it.PurchaseOrder, &it.PurchaseOrderItem,
		); err != nil {
			return nil, fmt.Errorf("scan receipt item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
