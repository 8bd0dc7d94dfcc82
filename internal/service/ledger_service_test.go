package service

import (
	"context"
	"errors"
	"testing"

	"brewhouse/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedCategory(t *testing.T, db *gorm.DB, name, catType string) {
	t.Helper()
	if err := db.Create(&model.Category{Name: name, Type: catType}).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
}

func TestCreateTransactionRequiresMemo(t *testing.T) {
	db := setupTestDB(t, "ledger_memo")
	svc := newTestLedgerService(db)
	seedCategory(t, db, "Sales", model.CategoryTypeRevenue)

	_, err := svc.CreateTransaction(context.Background(), uuid.NewString(), model.RoleManager, CreateTransactionRequest{
		Type:     model.TxTypeCredit,
		Category: "Sales",
		Amount:   decimal.RequireFromString("100.00"),
		Memo:     "   ",
	})
	if !errors.Is(err, ErrMemoRequired) {
		t.Fatalf("expected ErrMemoRequired, got %v", err)
	}
}

func TestCreateTransactionRejectsUnknownCategory(t *testing.T) {
	db := setupTestDB(t, "ledger_category")
	svc := newTestLedgerService(db)

	_, err := svc.CreateTransaction(context.Background(), uuid.NewString(), model.RoleManager, CreateTransactionRequest{
		Type:     model.TxTypeCredit,
		Category: "Not A Category",
		Amount:   decimal.RequireFromString("100.00"),
		Memo:     "keg sale",
	})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestPendingTransactionExcludedFromAggregates(t *testing.T) {
	db := setupTestDB(t, "ledger_pending")
	svc := newTestLedgerService(db)
	seedCategory(t, db, "Sales", model.CategoryTypeRevenue)

	tx, err := svc.CreateTransaction(context.Background(), uuid.NewString(), model.RoleManager, CreateTransactionRequest{
		Date:     "2026-02-01",
		Type:     model.TxTypeCredit,
		Category: "Sales",
		Amount:   decimal.RequireFromString("500.00"),
		Memo:     "keg sale",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if tx.Status != model.TxStatusPending {
		t.Fatalf("expected Pending, got %q", tx.Status)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if !overview.Summary.Treasury.IsZero() {
		t.Errorf("expected pending entry excluded from treasury, got %s", overview.Summary.Treasury)
	}
	if !overview.Summary.Revenue.IsZero() {
		t.Errorf("expected pending entry excluded from revenue, got %s", overview.Summary.Revenue)
	}
}

func TestApproveStampsApproverAndMovesAggregates(t *testing.T) {
	db := setupTestDB(t, "ledger_approve")
	svc := newTestLedgerService(db)
	seedCategory(t, db, "Sales", model.CategoryTypeRevenue)

	tx, err := svc.CreateTransaction(context.Background(), uuid.NewString(), model.RoleManager, CreateTransactionRequest{
		Date:     "2026-02-01",
		Type:     model.TxTypeCredit,
		Category: "Sales",
		Amount:   decimal.RequireFromString("500.00"),
		Memo:     "keg sale",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cfo := uuid.NewString()
	approved, err := svc.Approve(context.Background(), cfo, tx.ID.String())
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != model.TxStatusApproved {
		t.Errorf("expected Approved, got %q", approved.Status)
	}
	if approved.ApprovedBy == nil || approved.ApprovedBy.String() != cfo {
		t.Errorf("expected approved_by %s, got %v", cfo, approved.ApprovedBy)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if !overview.Summary.Treasury.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("expected treasury 500.00 after approval, got %s", overview.Summary.Treasury)
	}

	// Decided exactly once
	if _, err := svc.Reject(context.Background(), cfo, tx.ID.String()); !errors.Is(err, ErrTransactionDecided) {
		t.Fatalf("expected ErrTransactionDecided, got %v", err)
	}
}

func TestRejectedTransactionStaysOutOfLedger(t *testing.T) {
	db := setupTestDB(t, "ledger_reject")
	svc := newTestLedgerService(db)
	seedCategory(t, db, "Ingredients", model.CategoryTypeExpense)

	tx, err := svc.CreateTransaction(context.Background(), uuid.NewString(), model.RoleBrewer, CreateTransactionRequest{
		Type:     model.TxTypeDebit,
		Category: "Ingredients",
		Amount:   decimal.RequireFromString("75.00"),
		Memo:     "hops order",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Reject(context.Background(), uuid.NewString(), tx.ID.String()); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if !overview.Summary.Treasury.IsZero() || !overview.Summary.Expense.IsZero() {
		t.Errorf("expected rejected entry excluded, treasury=%s expense=%s",
			overview.Summary.Treasury, overview.Summary.Expense)
	}
}

func TestCFOSubmissionSkipsAuditQueue(t *testing.T) {
	db := setupTestDB(t, "ledger_cfo")
	svc := newTestLedgerService(db)
	seedCategory(t, db, "Sales", model.CategoryTypeRevenue)

	cfo := uuid.NewString()
	tx, err := svc.CreateTransaction(context.Background(), cfo, model.RoleCFO, CreateTransactionRequest{
		Type:     model.TxTypeCredit,
		Category: "Sales",
		Amount:   decimal.RequireFromString("120.00"),
		Memo:     "taproom till",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if tx.Status != model.TxStatusApproved {
		t.Errorf("expected CFO entry auto-approved, got %q", tx.Status)
	}
	if tx.ApprovedBy == nil || tx.ApprovedBy.String() != cfo {
		t.Errorf("expected approved_by to be the submitter, got %v", tx.ApprovedBy)
	}

	pending, total, err := svc.PendingQueue(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("pending queue failed: %v", err)
	}
	if total != 0 || len(pending) != 0 {
		t.Errorf("expected empty pending queue, got %d entries", total)
	}
}
