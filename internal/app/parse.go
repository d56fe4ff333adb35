package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"purchasing-bridge/internal/core"
)

// ParseInvoiceRequest deserializes an invoice creation payload. Some ERP
// clients double-encode the payload — the body is a JSON string whose
// content is the actual JSON object — so a leading quote triggers one
// level of unwrapping before the object is decoded.
func ParseInvoiceRequest(raw []byte) (*InvoiceRequest, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedRequest)
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		data = []byte(inner)
	}

	var req InvoiceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return &req, nil
}

// Validate checks the preconditions that the upstream implementation left
// to the ERP framework: required header fields, a parseable posting date,
// and per-line item_code/qty/rate with non-negative quantities and rates.
func (r *InvoiceRequest) Validate() error {
	if r.Company == "" {
		return fmt.Errorf("%w: company is required", ErrValidation)
	}
	if r.Supplier == "" {
		return fmt.Errorf("%w: supplier is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", r.PostingDate); err != nil {
		return fmt.Errorf("%w: posting_date must be YYYY-MM-DD", ErrValidation)
	}
	if r.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *r.DueDate); err != nil {
			return fmt.Errorf("%w: due_date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}

	for i, it := range r.Items {
		if it.ItemCode == "" {
			return fmt.Errorf("%w: item %d: item_code is required", ErrValidation, i+1)
		}
		if it.Qty == nil {
			return fmt.Errorf("%w: item %d: qty is required", ErrValidation, i+1)
		}
		if it.Qty.IsNegative() {
			return fmt.Errorf("%w: item %d: qty must not be negative", ErrValidation, i+1)
		}
		if it.Rate == nil {
			return fmt.Errorf("%w: item %d: rate is required", ErrValidation, i+1)
		}
		if it.Rate.IsNegative() {
			return fmt.Errorf("%w: item %d: rate must not be negative", ErrValidation, i+1)
		}
	}
	return nil
}

// toInput converts a validated request into the materializer's input shape.
func (r *InvoiceRequest) toInput() core.InvoiceInput {
	in := core.InvoiceInput{
		Company:     r.Company,
		Supplier:    r.Supplier,
		PostingDate: r.PostingDate,
		DueDate:     r.DueDate,
		Currency:    r.Currency,
		Notes:       r.Notes,
		Remarks:     r.Remarks,
	}
	for _, it := range r.Items {
		in.Lines = append(in.Lines, core.InvoiceLineInput{
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Description:         it.Description,
			Qty:                 *it.Qty,
			Rate:                *it.Rate,
			UOM:                 it.UOM,
			Warehouse:           it.Warehouse,
			PurchaseReceipt:     it.PurchaseReceipt,
			PurchaseReceiptItem: it.PurchaseReceiptItem,
			PurchaseOrder:       it.PurchaseOrder,
			PurchaseOrderItem:   it.PurchaseOrderItem,
			ReceivedQty:         it.ReceivedQty,
			RejectedQty:         it.RejectedQty,
		})
	}
	return in
}
