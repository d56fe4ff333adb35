package app

import "context"

// ApplicationService is the single interface transport adapters (web, CLI)
// call. Operations never raise: every failure is caught, written to the
// error log, and returned inside the result envelope.
type ApplicationService interface {
	// CreatePurchaseInvoice materializes and persists a purchase invoice
	// from a parsed request, submitting it when the request asks for it.
	CreatePurchaseInvoice(ctx context.Context, req *InvoiceRequest) *InvoiceResult

	// CreatePurchaseInvoiceRaw accepts the serialized request body —
	// either a JSON object or a double-encoded JSON string — and behaves
	// like CreatePurchaseInvoice.
	CreatePurchaseInvoiceRaw(ctx context.Context, raw []byte) *InvoiceResult

	// FetchReceiptDetail projects a stored purchase receipt into the
	// client-consumable shape used to prefill invoice creation.
	FetchReceiptDetail(ctx context.Context, receiptName string) *ReceiptDetailResult

	// GetPurchaseInvoice reads back a created invoice with its lines.
	GetPurchaseInvoice(ctx context.Context, name string) *InvoiceDetailResult
}
