package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocStatus follows the ERP convention: 0 draft, 1 submitted, 2 cancelled.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// PurchaseReceipt is a goods receipt header as stored upstream.
type PurchaseReceipt struct {
	Name         string
	Supplier     string
	SupplierName string
	PostingDate  time.Time
	Company      string
	Currency     string
	Note         *string
	DocStatus    DocStatus
	Items        []PurchaseReceiptItem
}

// PurchaseReceiptItem is one line of a purchase receipt. Quantity columns
// other than qty are nullable in the store; consumers default them to zero.
type PurchaseReceiptItem struct {
	Name              string
	Parent            string
	Idx               int
	ItemCode          string
	ItemName          string
	Description       string
	Qty               decimal.Decimal
	ReceivedQty       *decimal.Decimal
	RejectedQty       *decimal.Decimal
	AcceptedQty       *decimal.Decimal
	BilledQty         *decimal.Decimal
	OutstandingQty    *decimal.Decimal
	UOM               string
	Rate              decimal.Decimal
	Amount            decimal.Decimal
	Warehouse         *string
	PurchaseOrder     *string
	PurchaseOrderItem *string
}

// PurchaseInvoice is an invoice created by this service. Name is assigned
// from the naming series at insert time.
type PurchaseInvoice struct {
	Name        string
	Company     string
	Supplier    string
	PostingDate string // YYYY-MM-DD
	DueDate     *string
	Currency    string
	Notes       string
	Remarks     string
	DocStatus   DocStatus
	CreatedAt   time.Time
	SubmittedAt *time.Time
	Items       []PurchaseInvoiceItem
}

// PurchaseInvoiceItem is one materialized invoice line. PRDetail and
// PODetail carry the resolved receipt/order line references; nil means no
// matching line was found (which is not an error).
type PurchaseInvoiceItem struct {
	ID              int64
	Parent          string
	Idx             int
	ItemCode        string
	ItemName        string
	Description     string
	Qty             decimal.Decimal
	UOM             string
	Rate            decimal.Decimal
	Warehouse       *string
	PurchaseReceipt *string
	PurchaseOrder   *string
	PRDetail        *string
	PODetail        *string
	ReceivedQty     decimal.Decimal
	RejectedQty     decimal.Decimal
}

// ReceiptLineQuantities holds the stored received/rejected quantities of a
// receipt line, nil when the store has no value.
type ReceiptLineQuantities struct {
	Received *decimal.Decimal
	Rejected *decimal.Decimal
}
