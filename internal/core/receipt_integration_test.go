package core_test

import (
	"context"
	"testing"

	"purchasing-bridge/internal/core"

	"github.com/shopspring/decimal"
)

func TestReceipt_GetWithLines(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	receipts := core.NewReceiptService(pool)

	pr, err := receipts.GetReceipt(ctx, "PR-1")
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}

	if pr.Supplier != "S1" || pr.Company != "C1" {
		t.Errorf("header = (%s, %s), want (S1, C1)", pr.Supplier, pr.Company)
	}
	if len(pr.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(pr.Items))
	}
	if pr.Items[0].Name != "PRI-1" || pr.Items[1].Name != "PRI-2" {
		t.Errorf("item order = (%s, %s), want stored order (PRI-1, PRI-2)", pr.Items[0].Name, pr.Items[1].Name)
	}

	// PRI-2 was seeded with NULL quantities.
	if pr.Items[1].ReceivedQty != nil {
		t.Errorf("PRI-2 received_qty = %v, want nil", pr.Items[1].ReceivedQty)
	}
	if pr.Items[0].ReceivedQty == nil || !pr.Items[0].ReceivedQty.Equal(decimal.NewFromInt(10)) {
		t.Errorf("PRI-1 received_qty = %v, want 10", pr.Items[0].ReceivedQty)
	}
}

func TestReceipt_Exists(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	receipts := core.NewReceiptService(pool)

	exists, err := receipts.Exists(ctx, "PR-1")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("PR-1 should exist")
	}

	exists, err = receipts.Exists(ctx, "PR-MISSING")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("PR-MISSING should not exist")
	}
}

func TestReceipt_MatchReceiptLine(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	receipts := core.NewReceiptService(pool)

	matched, err := receipts.MatchReceiptLine(ctx, "PR-1", "PRI-1", "ITEM-1")
	if err != nil {
		t.Fatalf("MatchReceiptLine: %v", err)
	}
	if matched == nil || *matched != "PRI-1" {
		t.Errorf("match = %v, want PRI-1", matched)
	}

	// Wrong item code on the right line is a miss, not an error.
	matched, err = receipts.MatchReceiptLine(ctx, "PR-1", "PRI-1", "ITEM-2")
	if err != nil {
		t.Fatalf("MatchReceiptLine: %v", err)
	}
	if matched != nil {
		t.Errorf("match = %v, want nil for item code mismatch", *matched)
	}
}

func TestReceipt_LineQuantities(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	receipts := core.NewReceiptService(pool)

	q, err := receipts.LineQuantities(ctx, "PRI-1")
	if err != nil {
		t.Fatalf("LineQuantities: %v", err)
	}
	if q.Received == nil || !q.Received.Equal(decimal.NewFromInt(10)) {
		t.Errorf("received = %v, want 10", q.Received)
	}
	if q.Rejected == nil || !q.Rejected.Equal(decimal.NewFromInt(2)) {
		t.Errorf("rejected = %v, want 2", q.Rejected)
	}

	q, err = receipts.LineQuantities(ctx, "PRI-2")
	if err != nil {
		t.Fatalf("LineQuantities: %v", err)
	}
	if q.Received != nil || q.Rejected != nil {
		t.Errorf("quantities = (%v, %v), want nils for NULL columns", q.Received, q.Rejected)
	}
}
