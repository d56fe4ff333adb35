package app

import (
	"context"
	"fmt"

	"purchasing-bridge/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type appService struct {
	materializer *core.Materializer
	invoices     core.InvoiceService
	receipts     core.ReceiptService
	errorLog     core.ErrorLogService
	log          zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	materializer *core.Materializer,
	invoices core.InvoiceService,
	receipts core.ReceiptService,
	errorLog core.ErrorLogService,
	log zerolog.Logger,
) ApplicationService {
	return &appService{
		materializer: materializer,
		invoices:     invoices,
		receipts:     receipts,
		errorLog:     errorLog,
		log:          log,
	}
}

func (s *appService) CreatePurchaseInvoiceRaw(ctx context.Context, raw []byte) *InvoiceResult {
	req, err := ParseInvoiceRequest(raw)
	if err != nil {
		return s.invoiceFailure(ctx, err)
	}
	return s.CreatePurchaseInvoice(ctx, req)
}

func (s *appService) CreatePurchaseInvoice(ctx context.Context, req *InvoiceRequest) *InvoiceResult {
	if err := req.Validate(); err != nil {
		return s.invoiceFailure(ctx, err)
	}

	s.log.Debug().
		Str("company", req.Company).
		Str("supplier", req.Supplier).
		Int("items", len(req.Items)).
		Bool("submit", req.Submit).
		Msg("creating purchase invoice")

	draft, err := s.materializer.BuildInvoice(ctx, req.toInput())
	if err != nil {
		return s.invoiceFailure(ctx, err)
	}

	inv, err := s.invoices.CreateInvoice(ctx, draft)
	if err != nil {
		return s.invoiceFailure(ctx, err)
	}

	if req.Submit {
		inv, err = s.invoices.SubmitInvoice(ctx, inv.Name)
		if err != nil {
			return s.invoiceFailure(ctx, fmt.Errorf("submit %s: %w", inv.Name, err))
		}
	}

	s.log.Info().
		Str("invoice", inv.Name).
		Int("docstatus", int(inv.DocStatus)).
		Msg("purchase invoice created")

	return &InvoiceResult{
		Success: true,
		Message: "Purchase Invoice created successfully",
		Data: &InvoiceResultData{
			Name:      inv.Name,
			DocStatus: int(inv.DocStatus),
		},
	}
}

func (s *appService) FetchReceiptDetail(ctx context.Context, receiptName string) *ReceiptDetailResult {
	exists, err := s.receipts.Exists(ctx, receiptName)
	if err != nil {
		return s.receiptFailure(ctx, receiptName, err)
	}
	if !exists {
		// Not-found is an expected client outcome, not an error-log event.
		return &ReceiptDetailResult{
			Success: false,
			Message: fmt.Sprintf("Purchase Receipt %s not found", receiptName),
		}
	}

	receipt, err := s.receipts.GetReceipt(ctx, receiptName)
	if err != nil {
		return s.receiptFailure(ctx, receiptName, err)
	}

	s.log.Debug().
		Str("receipt", receipt.Name).
		Int("items", len(receipt.Items)).
		Msg("projecting receipt detail")

	return &ReceiptDetailResult{
		Success: true,
		Data:    projectReceipt(receipt),
	}
}

func (s *appService) GetPurchaseInvoice(ctx context.Context, name string) *InvoiceDetailResult {
	inv, err := s.invoices.GetInvoice(ctx, name)
	if err != nil {
		return &InvoiceDetailResult{Success: false, Message: err.Error()}
	}
	return &InvoiceDetailResult{Success: true, Data: projectInvoice(inv)}
}

// invoiceFailure records the failure and builds the envelope. Errors are
// never re-raised past this point.
func (s *appService) invoiceFailure(ctx context.Context, err error) *InvoiceResult {
	s.log.Error().Err(err).Msg("purchase invoice creation failed")
	s.errorLog.LogError(ctx, categoryInvoiceAPI,
		fmt.Sprintf("Error creating Purchase Invoice: %v", err),
		RequestIDFromContext(ctx))
	return &InvoiceResult{Success: false, Message: err.Error()}
}

func (s *appService) receiptFailure(ctx context.Context, receiptName string, err error) *ReceiptDetailResult {
	s.log.Error().Err(err).Str("receipt", receiptName).Msg("receipt detail fetch failed")
	s.errorLog.LogError(ctx, categoryReceiptDetail,
		fmt.Sprintf("Error fetching PR details for %s: %v", receiptName, err),
		RequestIDFromContext(ctx))
	return &ReceiptDetailResult{Success: false, Message: err.Error()}
}

// projectReceipt flattens a stored receipt into its client shape. Optional
// store quantities default to zero; the line's own identifier is exposed
// as purchase_receipt_item for round-tripping.
func projectReceipt(r *core.PurchaseReceipt) *ReceiptProjection {
	p := &ReceiptProjection{
		Name:         r.Name,
		Supplier:     r.Supplier,
		SupplierName: r.SupplierName,
		PostingDate:  r.PostingDate.Format("2006-01-02"),
		Company:      r.Company,
		Currency:     r.Currency,
		Items:        []ReceiptLineProjection{},
	}
	if r.Note != nil {
		p.Note = *r.Note
	}
	for _, it := range r.Items {
		p.Items = append(p.Items, ReceiptLineProjection{
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Description:         it.Description,
			Qty:                 it.Qty,
			ReceivedQty:         qtyOrZero(it.ReceivedQty),
			RejectedQty:         qtyOrZero(it.RejectedQty),
			AcceptedQty:         qtyOrZero(it.AcceptedQty),
			BilledQty:           qtyOrZero(it.BilledQty),
			OutstandingQty:      qtyOrZero(it.OutstandingQty),
			UOM:                 it.UOM,
			Rate:                it.Rate,
			Amount:              it.Amount,
			Warehouse:           it.Warehouse,
			PurchaseOrder:       it.PurchaseOrder,
			PurchaseOrderItem:   it.PurchaseOrderItem,
			PurchaseReceiptItem: it.Name,
		})
	}
	return p
}

func projectInvoice(inv *core.PurchaseInvoice) *InvoiceProjection {
	p := &InvoiceProjection{
		Name:        inv.Name,
		Company:     inv.Company,
		Supplier:    inv.Supplier,
		PostingDate: inv.PostingDate,
		DueDate:     inv.DueDate,
		Currency:    inv.Currency,
		Notes:       inv.Notes,
		Remarks:     inv.Remarks,
		DocStatus:   int(inv.DocStatus),
		Items:       []InvoiceLineProjection{},
	}
	for _, it := range inv.Items {
		p.Items = append(p.Items, InvoiceLineProjection{
			Idx:             it.Idx,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Description:     it.Description,
			Qty:             it.Qty,
			UOM:             it.UOM,
			Rate:            it.Rate,
			Warehouse:       it.Warehouse,
			PurchaseReceipt: it.PurchaseReceipt,
			PurchaseOrder:   it.PurchaseOrder,
			PRDetail:        it.PRDetail,
			PODetail:        it.PODetail,
			ReceivedQty:     it.ReceivedQty,
			RejectedQty:     it.RejectedQty,
		})
	}
	return p
}

func qtyOrZero(q *decimal.Decimal) decimal.Decimal {
	if q != nil {
		return *q
	}
	return decimal.Zero
}
