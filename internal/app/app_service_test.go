package app_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"purchasing-bridge/internal/app"
	"purchasing-bridge/internal/core"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ── In-memory collaborators ──────────────────────────────────────────────────

type memReceipts struct {
	receipts   map[string]*core.PurchaseReceipt
	lines      map[string]string
	quantities map[string]core.ReceiptLineQuantities
}

func (m *memReceipts) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.receipts[name]
	return ok, nil
}

func (m *memReceipts) GetReceipt(_ context.Context, name string) (*core.PurchaseReceipt, error) {
	r, ok := m.receipts[name]
	if !ok {
		return nil, fmt.Errorf("purchase receipt %s not found", name)
	}
	return r, nil
}

func (m *memReceipts) MatchReceiptLine(_ context.Context, receipt, lineName, itemCode string) (*string, error) {
	if matched, ok := m.lines[receipt+"/"+lineName+"/"+itemCode]; ok {
		return &matched, nil
	}
	return nil, nil
}

func (m *memReceipts) LineQuantities(_ context.Context, lineName string) (core.ReceiptLineQuantities, error) {
	return m.quantities[lineName], nil
}

type memOrders struct{}

func (memOrders) MatchOrderLine(context.Context, string, string, string) (*string, error) {
	return nil, nil
}

type memInvoices struct {
	created map[string]*core.PurchaseInvoice
	seq     int
}

func (m *memInvoices) CreateInvoice(_ context.Context, inv *core.PurchaseInvoice) (*core.PurchaseInvoice, error) {
	if m.created == nil {
		m.created = map[string]*core.PurchaseInvoice{}
	}
	m.seq++
	stored := *inv
	stored.Name = fmt.Sprintf("ACC-PINV-2024-%05d", m.seq)
	stored.DocStatus = core.DocStatusDraft
	m.created[stored.Name] = &stored
	return &stored, nil
}

func (m *memInvoices) SubmitInvoice(_ context.Context, name string) (*core.PurchaseInvoice, error) {
	inv, ok := m.created[name]
	if !ok {
		return nil, fmt.Errorf("purchase invoice %s not found", name)
	}
	inv.DocStatus = core.DocStatusSubmitted
	return inv, nil
}

func (m *memInvoices) GetInvoice(_ context.Context, name string) (*core.PurchaseInvoice, error) {
	inv, ok := m.created[name]
	if !ok {
		return nil, fmt.Errorf("purchase invoice %s not found", name)
	}
	return inv, nil
}

type memErrorLog struct {
	entries []string
}

func (m *memErrorLog) LogError(_ context.Context, category, message, _ string) {
	m.entries = append(m.entries, category+": "+message)
}

func newTestService() (app.ApplicationService, *memInvoices, *memErrorLog) {
	receipts := &memReceipts{
		receipts: map[string]*core.PurchaseReceipt{
			"PR-1": {
				Name:         "PR-1",
				Supplier:     "S1",
				SupplierName: "Supplier One",
				PostingDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Company:      "C1",
				Currency:     "IDR",
				Items: []core.PurchaseReceiptItem{
					{Name: "PRI-1", Parent: "PR-1", Idx: 1, ItemCode: "ITEM-1", ItemName: "Item One",
						Qty: decimal.NewFromInt(10), ReceivedQty: decPtr(10), RejectedQty: decPtr(2),
						UOM: "Nos", Rate: decimal.NewFromInt(5)},
					{Name: "PRI-2", Parent: "PR-1", Idx: 2, ItemCode: "ITEM-2", ItemName: "Item Two",
						Qty: decimal.NewFromInt(4), UOM: "Box", Rate: decimal.NewFromInt(12)},
				},
			},
		},
		lines: map[string]string{"PR-1/PRI-1/ITEM-1": "PRI-1"},
		quantities: map[string]core.ReceiptLineQuantities{
			"PRI-1": {Received: decPtr(10), Rejected: decPtr(2)},
		},
	}

	invoices := &memInvoices{}
	errorLog := &memErrorLog{}
	materializer := core.NewMaterializer(receipts, memOrders{}, zerolog.Nop())
	svc := app.NewAppService(materializer, invoices, receipts, errorLog, zerolog.Nop())
	return svc, invoices, errorLog
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// ── Invoice creation ─────────────────────────────────────────────────────────

func TestCreatePurchaseInvoiceRaw_Success(t *testing.T) {
	svc, invoices, _ := newTestService()

	body := `{"company":"C1","supplier":"S1","posting_date":"2024-01-01",
		"items":[{"item_code":"ITEM-1","qty":10,"rate":5,
		          "purchase_receipt":"PR-1","purchase_receipt_item":"PRI-1",
		          "received_qty":8}]}`

	result := svc.CreatePurchaseInvoiceRaw(context.Background(), []byte(body))
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.Data == nil || result.Data.Name == "" {
		t.Fatalf("data = %+v, want invoice name", result.Data)
	}
	if result.Data.DocStatus != 0 {
		t.Errorf("docstatus = %d, want 0 (draft)", result.Data.DocStatus)
	}

	inv := invoices.created[result.Data.Name]
	if inv == nil {
		t.Fatal("invoice not persisted")
	}
	item := inv.Items[0]
	if item.PRDetail == nil || *item.PRDetail != "PRI-1" {
		t.Errorf("pr_detail = %v, want PRI-1", item.PRDetail)
	}
	if !item.ReceivedQty.Equal(decimal.NewFromInt(8)) {
		t.Errorf("received_qty = %s, want explicit 8", item.ReceivedQty)
	}
}

func TestCreatePurchaseInvoice_SubmitFlag(t *testing.T) {
	svc, _, _ := newTestService()

	body := `{"company":"C1","supplier":"S1","posting_date":"2024-01-01","submit":true,
		"items":[{"item_code":"ITEM-1","qty":1,"rate":1}]}`

	result := svc.CreatePurchaseInvoiceRaw(context.Background(), []byte(body))
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}
	if result.Data.DocStatus != 1 {
		t.Errorf("docstatus = %d, want 1 (submitted)", result.Data.DocStatus)
	}
}

func TestCreatePurchaseInvoiceRaw_Malformed(t *testing.T) {
	svc, invoices, errorLog := newTestService()

	result := svc.CreatePurchaseInvoiceRaw(context.Background(), []byte("{broken"))
	if result.Success {
		t.Fatal("want failure for malformed body")
	}
	if len(invoices.created) != 0 {
		t.Error("nothing should be persisted on parse failure")
	}
	if len(errorLog.entries) != 1 || !strings.Contains(errorLog.entries[0], "Purchase Invoice API Error") {
		t.Errorf("error log = %v, want one Purchase Invoice API Error entry", errorLog.entries)
	}
}

func TestCreatePurchaseInvoice_ValidationFailure(t *testing.T) {
	svc, invoices, errorLog := newTestService()

	// qty missing on the line
	body := `{"company":"C1","supplier":"S1","posting_date":"2024-01-01",
		"items":[{"item_code":"ITEM-1","rate":5}]}`

	result := svc.CreatePurchaseInvoiceRaw(context.Background(), []byte(body))
	if result.Success {
		t.Fatal("want failure for missing qty")
	}
	if !strings.Contains(result.Message, "qty") {
		t.Errorf("message = %q, want mention of qty", result.Message)
	}
	if len(invoices.created) != 0 {
		t.Error("nothing should be persisted on validation failure")
	}
	if len(errorLog.entries) != 1 {
		t.Errorf("error log entries = %d, want 1", len(errorLog.entries))
	}
}

// ── Receipt detail ───────────────────────────────────────────────────────────

func TestFetchReceiptDetail_Success(t *testing.T) {
	svc, _, _ := newTestService()

	result := svc.FetchReceiptDetail(context.Background(), "PR-1")
	if !result.Success {
		t.Fatalf("result = %+v, want success", result)
	}

	data := result.Data
	if data.PostingDate != "2024-01-01" {
		t.Errorf("posting_date = %s, want ISO 2024-01-01", data.PostingDate)
	}
	if data.Note != "" {
		t.Errorf("note = %q, want empty-string default", data.Note)
	}
	if len(data.Items) != 2 {
		t.Fatalf("items = %d, want 2 in store order", len(data.Items))
	}
	if data.Items[0].PurchaseReceiptItem != "PRI-1" || data.Items[1].PurchaseReceiptItem != "PRI-2" {
		t.Errorf("purchase_receipt_item = (%s, %s), want (PRI-1, PRI-2)",
			data.Items[0].PurchaseReceiptItem, data.Items[1].PurchaseReceiptItem)
	}

	// PRI-2 has no stored quantities: all default to zero.
	second := data.Items[1]
	for name, q := range map[string]decimal.Decimal{
		"received_qty":    second.ReceivedQty,
		"rejected_qty":    second.RejectedQty,
		"accepted_qty":    second.AcceptedQty,
		"billed_qty":      second.BilledQty,
		"outstanding_qty": second.OutstandingQty,
	} {
		if !q.IsZero() {
			t.Errorf("%s = %s, want 0 default", name, q)
		}
	}
}

func TestFetchReceiptDetail_NotFound(t *testing.T) {
	svc, _, errorLog := newTestService()

	result := svc.FetchReceiptDetail(context.Background(), "PR-MISSING")
	if result.Success {
		t.Fatal("want failure for missing receipt")
	}
	if !strings.Contains(result.Message, "PR-MISSING not found") {
		t.Errorf("message = %q, want not-found text", result.Message)
	}
	if result.Data != nil {
		t.Error("data should be nil on failure")
	}
	// Not-found is a client outcome, not an error-log event.
	if len(errorLog.entries) != 0 {
		t.Errorf("error log = %v, want empty", errorLog.entries)
	}
}

// Round-trip: feeding a projection's purchase_receipt_item back into
// invoice creation resolves the identical pr_detail.
func TestReceiptDetailRoundTrip(t *testing.T) {
	svc, invoices, _ := newTestService()

	detail := svc.FetchReceiptDetail(context.Background(), "PR-1")
	if !detail.Success {
		t.Fatalf("FetchReceiptDetail: %+v", detail)
	}
	first := detail.Data.Items[0]

	req := &app.InvoiceRequest{
		Company:     detail.Data.Company,
		Supplier:    detail.Data.Supplier,
		PostingDate: "2024-01-02",
		Items: []app.InvoiceItemRequest{{
			ItemCode:            first.ItemCode,
			Qty:                 &first.Qty,
			Rate:                &first.Rate,
			PurchaseReceipt:     &detail.Data.Name,
			PurchaseReceiptItem: &first.PurchaseReceiptItem,
		}},
	}

	result := svc.CreatePurchaseInvoice(context.Background(), req)
	if !result.Success {
		t.Fatalf("CreatePurchaseInvoice: %+v", result)
	}

	inv := invoices.created[result.Data.Name]
	if got := inv.Items[0].PRDetail; got == nil || *got != first.PurchaseReceiptItem {
		t.Errorf("pr_detail = %v, want %s", got, first.PurchaseReceiptItem)
	}
	// No override supplied: received_qty derives from the stored line.
	if !inv.Items[0].ReceivedQty.Equal(decimal.NewFromInt(10)) {
		t.Errorf("received_qty = %s, want stored 10", inv.Items[0].ReceivedQty)
	}
}

func TestGetPurchaseInvoice(t *testing.T) {
	svc, _, _ := newTestService()

	body := `{"company":"C1","supplier":"S1","posting_date":"2024-01-01",
		"items":[{"item_code":"ITEM-1","qty":2,"rate":3}]}`
	created := svc.CreatePurchaseInvoiceRaw(context.Background(), []byte(body))
	if !created.Success {
		t.Fatalf("create: %+v", created)
	}

	result := svc.GetPurchaseInvoice(context.Background(), created.Data.Name)
	if !result.Success {
		t.Fatalf("GetPurchaseInvoice: %+v", result)
	}
	if result.Data.Name != created.Data.Name {
		t.Errorf("name = %s, want %s", result.Data.Name, created.Data.Name)
	}
	if len(result.Data.Items) != 1 || result.Data.Items[0].ItemCode != "ITEM-1" {
		t.Errorf("items = %+v, want single ITEM-1 line", result.Data.Items)
	}

	missing := svc.GetPurchaseInvoice(context.Background(), "ACC-PINV-2024-99999")
	if missing.Success {
		t.Error("want failure for missing invoice")
	}
}
