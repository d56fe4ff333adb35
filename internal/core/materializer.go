package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when an invoice input carries no currency.
const DefaultCurrency = "IDR"

// DefaultUOM is applied when an invoice line carries no unit of measure.
const DefaultUOM = "Nos"

// InvoiceInput describes an invoice to materialize. All fields are copied
// onto the draft invoice; Lines are resolved against the document store.
type InvoiceInput struct {
	Company     string
	Supplier    string
	PostingDate string // YYYY-MM-DD
	DueDate     *string
	Currency    string // empty means DefaultCurrency
	Notes       string
	Remarks     string
	Lines       []InvoiceLineInput
}

// InvoiceLineInput describes one requested invoice line. The receipt/order
// reference pairs are optional; when both halves of a pair are present the
// materializer resolves the linkage identifier from the store.
// ReceivedQty/RejectedQty are optional overrides — nil means "derive from
// the matched receipt line".
type InvoiceLineInput struct {
	ItemCode            string
	ItemName            *string
	Description         *string
	Qty                 decimal.Decimal
	Rate                decimal.Decimal
	UOM                 *string
	Warehouse           *string
	PurchaseReceipt     *string
	PurchaseReceiptItem *string
	PurchaseOrder       *string
	PurchaseOrderItem   *string
	ReceivedQty         *decimal.Decimal
	RejectedQty         *decimal.Decimal
}

// Materializer builds fully-populated purchase invoice drafts: it copies
// header fields, resolves receipt/order line linkage, and reconciles
// received/rejected quantities against the store.
type Materializer struct {
	receipts ReceiptService
	orders   OrderService
	log      zerolog.Logger
}

// NewMaterializer constructs a Materializer over the given store services.
func NewMaterializer(receipts ReceiptService, orders OrderService, log zerolog.Logger) *Materializer {
	return &Materializer{receipts: receipts, orders: orders, log: log}
}

// BuildInvoice materializes a draft PurchaseInvoice from the input. The
// returned invoice is not persisted; hand it to InvoiceService.CreateInvoice.
// A reference pair that matches no store line yields a nil linkage ref on
// that line, not an error.
func (m *Materializer) BuildInvoice(ctx context.Context, in InvoiceInput) (*PurchaseInvoice, error) {
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	inv := &PurchaseInvoice{
		Company:     in.Company,
		Supplier:    in.Supplier,
		PostingDate: in.PostingDate,
		DueDate:     in.DueDate,
		Currency:    currency,
		Notes:       in.Notes,
		Remarks:     in.Remarks,
	}

	for i, line := range in.Lines {
		item, err := m.buildLine(ctx, i, line)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, *item)
	}

	return inv, nil
}

func (m *Materializer) buildLine(ctx context.Context, idx int, line InvoiceLineInput) (*PurchaseInvoiceItem, error) {
	prDetail, err := m.resolveReceiptLine(ctx, line)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", idx+1, err)
	}
	poDetail, err := m.resolveOrderLine(ctx, line)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", idx+1, err)
	}

	m.log.Debug().
		Int("line", idx+1).
		Str("item_code", line.ItemCode).
		Any("pr_detail", prDetail).
		Any("po_detail", poDetail).
		Msg("resolved linkage")

	// Stored quantities only matter when a receipt line matched and at
	// least one override is unusable.
	var stored ReceiptLineQuantities
	if prDetail != nil && (!usableQty(line.ReceivedQty) || !usableQty(line.RejectedQty)) {
		stored, err = m.receipts.LineQuantities(ctx, *prDetail)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", idx+1, err)
		}
	}

	itemName := line.ItemCode
	if line.ItemName != nil && *line.ItemName != "" {
		itemName = *line.ItemName
	}
	description := itemName
	if line.Description != nil && *line.Description != "" {
		description = *line.Description
	}
	uom := DefaultUOM
	if line.UOM != nil && *line.UOM != "" {
		uom = *line.UOM
	}

	return &PurchaseInvoiceItem{
		Idx:             idx + 1,
		ItemCode:        line.ItemCode,
		ItemName:        itemName,
		Description:     description,
		Qty:             line.Qty,
		UOM:             uom,
		Rate:            line.Rate,
		Warehouse:       line.Warehouse,
		PurchaseReceipt: line.PurchaseReceipt,
		PurchaseOrder:   line.PurchaseOrder,
		PRDetail:        prDetail,
		PODetail:        poDetail,
		ReceivedQty:     effectiveQty(line.ReceivedQty, stored.Received),
		RejectedQty:     effectiveQty(line.RejectedQty, stored.Rejected),
	}, nil
}

func (m *Materializer) resolveReceiptLine(ctx context.Context, line InvoiceLineInput) (*string, error) {
	if line.PurchaseReceipt == nil || line.PurchaseReceiptItem == nil {
		return nil, nil
	}
	return m.receipts.MatchReceiptLine(ctx, *line.PurchaseReceipt, *line.PurchaseReceiptItem, line.ItemCode)
}

func (m *Materializer) resolveOrderLine(ctx context.Context, line InvoiceLineInput) (*string, error) {
	if line.PurchaseOrder == nil || line.PurchaseOrderItem == nil {
		return nil, nil
	}
	return m.orders.MatchOrderLine(ctx, *line.PurchaseOrder, *line.PurchaseOrderItem, line.ItemCode)
}

// usableQty reports whether a caller-supplied quantity counts as an
// explicit override. Zero is a valid override; a negative value is not
// rejected — it falls through to the store fallback, matching the
// upstream behavior.
func usableQty(q *decimal.Decimal) bool {
	return q != nil && !q.IsNegative()
}

// effectiveQty applies the fallback rule: explicit non-negative override
// wins, then the stored value of the matched receipt line, then zero.
func effectiveQty(override, stored *decimal.Decimal) decimal.Decimal {
	if usableQty(override) {
		return *override
	}
	if stored != nil {
		return *stored
	}
	return decimal.Zero
}
