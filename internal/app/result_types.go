package app

import "github.com/shopspring/decimal"

// InvoiceResult is the envelope returned by invoice creation.
type InvoiceResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    *InvoiceResultData `json:"data,omitempty"`
}

// InvoiceResultData identifies the created invoice.
type InvoiceResultData struct {
	Name      string `json:"name"`
	DocStatus int    `json:"docstatus"`
}

// ReceiptDetailResult is the envelope returned by receipt detail fetch.
type ReceiptDetailResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    *ReceiptProjection `json:"data,omitempty"`
}

// ReceiptProjection is the client-consumable shape of a stored receipt.
type ReceiptProjection struct {
	Name         string                  `json:"name"`
	Supplier     string                  `json:"supplier"`
	SupplierName string                  `json:"supplier_name"`
	PostingDate  string                  `json:"posting_date"` // YYYY-MM-DD
	Company      string                  `json:"company"`
	Currency     string                  `json:"currency"`
	Items        []ReceiptLineProjection `json:"items"`
	Note         string                  `json:"note"`
}

// ReceiptLineProjection is one projected receipt line. All optional
// quantity fields are defaulted to zero. PurchaseReceiptItem is the line's
// own identifier, fed back as purchase_receipt_item on a later invoice
// creation call to reconnect to this exact line.
type ReceiptLineProjection struct {
	ItemCode            string          `json:"item_code"`
	ItemName            string          `json:"item_name"`
	Description         string          `json:"description"`
	Qty                 decimal.Decimal `json:"qty"`
	ReceivedQty         decimal.Decimal `json:"received_qty"`
	RejectedQty         decimal.Decimal `json:"rejected_qty"`
	AcceptedQty         decimal.Decimal `json:"accepted_qty"`
	BilledQty           decimal.Decimal `json:"billed_qty"`
	OutstandingQty      decimal.Decimal `json:"outstanding_qty"`
	UOM                 string          `json:"uom"`
	Rate                decimal.Decimal `json:"rate"`
	Amount              decimal.Decimal `json:"amount"`
	Warehouse           *string         `json:"warehouse"`
	PurchaseOrder       *string         `json:"purchase_order"`
	PurchaseOrderItem   *string         `json:"purchase_order_item"`
	PurchaseReceiptItem string          `json:"purchase_receipt_item"`
}

// InvoiceDetailResult is the envelope returned by invoice read-back.
type InvoiceDetailResult struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    *InvoiceProjection `json:"data,omitempty"`
}

// InvoiceProjection is the client-consumable shape of a stored invoice.
type InvoiceProjection struct {
	Name        string                  `json:"name"`
	Company     string                  `json:"company"`
	Supplier    string                  `json:"supplier"`
	PostingDate string                  `json:"posting_date"`
	DueDate     *string                 `json:"due_date"`
	Currency    string                  `json:"currency"`
	Notes       string                  `json:"notes"`
	Remarks     string                  `json:"remarks"`
	DocStatus   int                     `json:"docstatus"`
	Items       []InvoiceLineProjection `json:"items"`
}

// InvoiceLineProjection is one stored invoice line including its resolved
// linkage references.
type InvoiceLineProjection struct {
	Idx             int             `json:"idx"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Description     string          `json:"description"`
	Qty             decimal.Decimal `json:"qty"`
	UOM             string          `json:"uom"`
	Rate            decimal.Decimal `json:"rate"`
	Warehouse       *string         `json:"warehouse"`
	PurchaseReceipt *string         `json:"purchase_receipt"`
	PurchaseOrder   *string         `json:"purchase_order"`
	PRDetail        *string         `json:"pr_detail"`
	PODetail        *string         `json:"po_detail"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	RejectedQty     decimal.Decimal `json:"rejected_qty"`
}
