package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceService persists purchase invoices. Insert and submit are the two
// lifecycle operations; everything past draft/submitted stays with the
// upstream ERP.
type InvoiceService interface {
	// CreateInvoice inserts the invoice header and all its lines in one
	// transaction, assigning the name from the naming series. The input's
	// Name field is ignored; the assigned name is returned on the stored
	// invoice.
	CreateInvoice(ctx context.Context, inv *PurchaseInvoice) (*PurchaseInvoice, error)

	// SubmitInvoice transitions a draft invoice to submitted.
	// Submitting an already-submitted invoice is a no-op.
	SubmitInvoice(ctx context.Context, name string) (*PurchaseInvoice, error)

	// GetInvoice loads an invoice with all its lines in stored order.
	GetInvoice(ctx context.Context, name string) (*PurchaseInvoice, error)
}

type invoiceService struct {
	pool   *pgxpool.Pool
	naming NamingService
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool, naming NamingService) InvoiceService {
	return &invoiceService{pool: pool, naming: naming}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, inv *PurchaseInvoice) (*PurchaseInvoice, error) {
	if len(inv.Items) == 0 {
		return nil, fmt.Errorf("purchase invoice must have at least one item")
	}

	fiscalYear, err := fiscalYearOf(inv.PostingDate)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	name, err := s.naming.NextNameTx(ctx, tx, InvoiceNamePrefix, fiscalYear)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO purchase_invoices
		            (name, company, supplier, posting_date, due_date, currency, notes, remarks, docstatus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		name, inv.Company, inv.Supplier, inv.PostingDate, inv.DueDate,
		inv.Currency, inv.Notes, inv.Remarks, int(DocStatusDraft),
	); err != nil {
		return nil, fmt.Errorf("insert purchase invoice: %w", err)
	}

	for i, it := range inv.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO purchase_invoice_items
			            (parent, idx, item_code, item_name, description, qty, uom, rate, warehouse,
			             purchase_receipt, purchase_order, pr_detail, po_detail, received_qty, rejected_qty)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			name, i+1, it.ItemCode, it.ItemName, it.Description, it.Qty, it.UOM, it.Rate, it.Warehouse,
			it.PurchaseReceipt, it.PurchaseOrder, it.PRDetail, it.PODetail, it.ReceivedQty, it.RejectedQty,
		); err != nil {
			return nil, fmt.Errorf("insert invoice item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit purchase invoice: %w", err)
	}

	return s.GetInvoice(ctx, name)
}

func (s *invoiceService) SubmitInvoice(ctx context.Context, name string) (*PurchaseInvoice, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status DocStatus
	if err := tx.QueryRow(ctx,
		"SELECT docstatus FROM purchase_invoices WHERE name = $1 FOR UPDATE", name,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase invoice %s not found", name)
		}
		return nil, fmt.Errorf("fetch purchase invoice %s: %w", name, err)
	}

	switch status {
	case DocStatusSubmitted:
		// Idempotent: already submitted.
	case DocStatusDraft:
		if _, err := tx.Exec(ctx, `
			UPDATE purchase_invoices
			SET docstatus = $1, submitted_at = NOW()
			WHERE name = $2`,
			int(DocStatusSubmitted), name,
		); err != nil {
			return nil, fmt.Errorf("submit purchase invoice %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("purchase invoice %s cannot be submitted: docstatus is %d", name, status)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invoice submission: %w", err)
	}

	return s.GetInvoice(ctx, name)
}

func (s *invoiceService) GetInvoice(ctx context.Context, name string) (*PurchaseInvoice, error) {
	inv := &PurchaseInvoice{}
	if err := s.pool.QueryRow(ctx, `
		SELECT name, company, supplier, posting_date::text, due_date::text, currency,
		       notes, remarks, docstatus, created_at, submitted_at
		FROM purchase_invoices
		WHERE name = $1`,
		name,
	).Scan(
		&inv.Name, &inv.Company, &inv.Supplier, &inv.PostingDate, &inv.DueDate, &inv.Currency,
		&inv.Notes, &inv.Remarks, &inv.DocStatus, &inv.CreatedAt, &inv.SubmittedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase invoice %s not found", name)
		}
		return nil, fmt.Errorf("get purchase invoice %s: %w", name, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, parent, idx, item_code, item_name, description, qty, uom, rate, warehouse,
		       purchase_receipt, purchase_order, pr_detail, po_detail, received_qty, rejected_qty
		FROM purchase_invoice_items
		WHERE parent = $1
		ORDER BY idx`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch invoice items for %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it PurchaseInvoiceItem
		if err := rows.Scan(
			&it.ID, &it.Parent, &it.Idx, &it.ItemCode, &it.ItemName, &it.Description,
			&it.Qty, &it.UOM, &it.Rate, &it.Warehouse,
			&it.PurchaseReceipt, &it.PurchaseOrder, &it.PRDetail, &it.PODetail,
			&it.ReceivedQty, &it.RejectedQty,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	return inv, rows.Err()
}

// fiscalYearOf extracts the year from a YYYY-MM-DD posting date.
func fiscalYearOf(postingDate string) (int, error) {
	if _, err := time.Parse("2006-01-02", postingDate); err != nil {
		return 0, fmt.Errorf("invalid posting date %q: %w", postingDate, err)
	}
	year, err := strconv.Atoi(postingDate[:4])
	if err != nil {
		return 0, fmt.Errorf("invalid posting date %q: %w", postingDate, err)
	}
	return year, nil
}
