package app

import "github.com/shopspring/decimal"

// InvoiceRequest is the input for creating a purchase invoice. It arrives
// either as a JSON object or as a double-encoded JSON string (see
// ParseInvoiceRequest).
type InvoiceRequest struct {
	Company     string               `json:"company"`
	Supplier    string               `json:"supplier"`
	PostingDate string               `json:"posting_date"`
	DueDate     *string              `json:"due_date,omitempty"`
	Currency    string               `json:"currency,omitempty"` // defaults to IDR
	Notes       string               `json:"notes,omitempty"`
	Remarks     string               `json:"remarks,omitempty"`
	Submit      bool                 `json:"submit,omitempty"`
	Items       []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest is a single requested invoice line. Qty and Rate are
// pointers so that an absent field can be told apart from an explicit zero
// and rejected by validation. ReceivedQty/RejectedQty are overrides for the
// quantity fallback — nil derives them from the matched receipt line.
type InvoiceItemRequest struct {
	ItemCode            string           `json:"item_code"`
	ItemName            *string          `json:"item_name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Qty                 *decimal.Decimal `json:"qty"`
	UOM                 *string          `json:"uom,omitempty"` // defaults to Nos
	Rate                *decimal.Decimal `json:"rate"`
	Warehouse           *string          `json:"warehouse,omitempty"`
	PurchaseReceipt     *string          `json:"purchase_receipt,omitempty"`
	PurchaseReceiptItem *string          `json:"purchase_receipt_item,omitempty"`
	PurchaseOrder       *string          `json:"purchase_order,omitempty"`
	PurchaseOrderItem   *string          `json:"purchase_order_item,omitempty"`
	ReceivedQty         *decimal.Decimal `json:"received_qty,omitempty"`
	RejectedQty         *decimal.Decimal `json:"rejected_qty,omitempty"`
}
