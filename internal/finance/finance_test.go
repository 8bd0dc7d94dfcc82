package finance

import (
	"testing"
	"time"

	"brewhouse/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func tx(date, typ, category, amount, status string) model.Transaction {
	return model.Transaction{
		ID:       uuid.New(),
		Date:     date,
		Type:     typ,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Memo:     "test",
		Status:   status,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRunningBalanceEmpty(t *testing.T) {
	points := RunningBalance(nil)
	if len(points) != 2 {
		t.Fatalf("expected 2 points got %d", len(points))
	}
	if !points[0].Balance.IsZero() || !points[1].Balance.IsZero() {
		t.Fatalf("expected zero balances got %v %v", points[0].Balance, points[1].Balance)
	}
	if points[0].Date >= points[1].Date {
		t.Fatalf("expected ascending dates got %s %s", points[0].Date, points[1].Date)
	}
}

func TestRunningBalanceSinglePointPadded(t *testing.T) {
	points := RunningBalance([]model.Transaction{
		tx("2026-02-01", model.TxTypeCredit, "Sales", "500", model.TxStatusApproved),
	})
	if len(points) != 2 {
		t.Fatalf("expected 2 points got %d", len(points))
	}
	if points[0].Date != "2026-01-31" || !points[0].Balance.IsZero() {
		t.Fatalf("expected synthetic zero point on 2026-01-31, got %s %v", points[0].Date, points[0].Balance)
	}
	if points[1].Date != "2026-02-01" || !points[1].Balance.Equal(dec("500")) {
		t.Fatalf("expected 500 on 2026-02-01, got %s %v", points[1].Date, points[1].Balance)
	}
}

func TestRunningBalanceIgnoresPendingAndCollapsesDates(t *testing.T) {
	points := RunningBalance([]model.Transaction{
		tx("2026-02-02", model.TxTypeDebit, "Supplies", "100", model.TxStatusApproved),
		tx("2026-02-01", model.TxTypeCredit, "Sales", "500", model.TxStatusApproved),
		tx("2026-02-02", model.TxTypeCredit, "Sales", "50", model.TxStatusApproved),
		tx("2026-02-03", model.TxTypeCredit, "Sales", "9999", model.TxStatusPending),
	})
	if len(points) != 2 {
		t.Fatalf("expected 2 points got %d", len(points))
	}
	if points[0].Date != "2026-02-01" || !points[0].Balance.Equal(dec("500")) {
		t.Fatalf("unexpected first point %s %v", points[0].Date, points[0].Balance)
	}
	// Last value per date: 500 - 100 + 50
	if points[1].Date != "2026-02-02" || !points[1].Balance.Equal(dec("450")) {
		t.Fatalf("unexpected second point %s %v", points[1].Date, points[1].Balance)
	}
}

func TestSummarizeCategoryFiltering(t *testing.T) {
	categories := []model.Category{
		{Name: "Sales", Type: model.CategoryTypeRevenue},
		{Name: "Supplies", Type: model.CategoryTypeExpense},
		{Name: model.CategoryCOGS, Type: model.CategoryTypeExpense},
		{Name: model.CategoryFounderCapital, Type: model.CategoryTypeEquity},
	}
	txs := []model.Transaction{
		tx("2026-01-01", model.TxTypeCredit, "Sales", "1000", model.TxStatusApproved),
		tx("2026-01-02", model.TxTypeDebit, "Supplies", "200", model.TxStatusApproved),
		tx("2026-01-03", model.TxTypeDebit, model.CategoryCOGS, "300", model.TxStatusApproved),
		// Equity injection moves cash but stays out of the P&L
		tx("2026-01-04", model.TxTypeCredit, model.CategoryFounderCapital, "5000", model.TxStatusApproved),
		// Unclassified category: treasury only
		tx("2026-01-05", model.TxTypeCredit, "Mystery", "10", model.TxStatusApproved),
		// Pending never counts anywhere
		tx("2026-01-06", model.TxTypeCredit, "Sales", "7777", model.TxStatusPending),
	}

	s := Summarize(txs, categories)
	if !s.Treasury.Equal(dec("5510")) {
		t.Errorf("treasury = %v, want 5510", s.Treasury)
	}
	if !s.Revenue.Equal(dec("1000")) {
		t.Errorf("revenue = %v, want 1000", s.Revenue)
	}
	if !s.Expense.Equal(dec("500")) {
		t.Errorf("expense = %v, want 500", s.Expense)
	}
	if !s.COGS.Equal(dec("300")) {
		t.Errorf("cogs = %v, want 300", s.COGS)
	}
	if !s.GrossProfit.Equal(dec("700")) {
		t.Errorf("gross profit = %v, want 700", s.GrossProfit)
	}
	if s.GrossMargin != "70" {
		t.Errorf("gross margin = %q, want 70", s.GrossMargin)
	}
	if !s.NetIncome.Equal(dec("500")) {
		t.Errorf("net income = %v, want 500", s.NetIncome)
	}
}

func TestSummarizeZeroRevenueMarginFallback(t *testing.T) {
	s := Summarize([]model.Transaction{
		tx("2026-01-01", model.TxTypeDebit, "Supplies", "50", model.TxStatusApproved),
	}, []model.Category{{Name: "Supplies", Type: model.CategoryTypeExpense}})
	if s.GrossMargin != "0" {
		t.Errorf("gross margin = %q, want display fallback 0", s.GrossMargin)
	}
}

func TestSavingsBalance(t *testing.T) {
	txs := []model.Transaction{
		tx("2026-01-01", model.TxTypeDebit, model.CategorySavings, "400", model.TxStatusApproved),
		tx("2026-01-02", model.TxTypeCredit, model.CategorySavings, "150", model.TxStatusApproved),
		tx("2026-01-03", model.TxTypeDebit, model.CategorySavings, "100", model.TxStatusPending),
		tx("2026-01-04", model.TxTypeDebit, "Supplies", "999", model.TxStatusApproved),
	}
	got := SavingsBalance(txs)
	if !got.Equal(dec("250")) {
		t.Fatalf("savings = %v, want 250", got)
	}
}

func TestLoanLiabilityFlatInterest(t *testing.T) {
	loan := model.Loan{
		ID:              uuid.New(),
		Name:            "Startup loan",
		PrincipalAmount: dec("10000"),
		InterestRate:    dec("10"),
	}
	positions, total := LoanLiability(nil, []model.Loan{loan})
	if len(positions) != 1 {
		t.Fatalf("expected 1 position got %d", len(positions))
	}
	if !positions[0].TotalOwed.Equal(dec("11000")) {
		t.Errorf("total owed = %v, want 11000", positions[0].TotalOwed)
	}
	if !total.Equal(dec("11000")) {
		t.Errorf("aggregate = %v, want 11000", total)
	}
}

func TestLoanLiabilityWithRepayments(t *testing.T) {
	loan := model.Loan{ID: uuid.New(), PrincipalAmount: dec("10000"), InterestRate: dec("10")}
	other := model.Loan{ID: uuid.New(), PrincipalAmount: dec("2000"), InterestRate: dec("0")}

	repay := tx("2026-01-10", model.TxTypeDebit, model.CategoryLoanRepayment, "1000", model.TxStatusApproved)
	repay.LoanID = &loan.ID
	reversal := tx("2026-01-11", model.TxTypeCredit, model.CategoryLoanRepayment, "200", model.TxStatusApproved)
	reversal.LoanID = &loan.ID
	pending := tx("2026-01-12", model.TxTypeDebit, model.CategoryLoanRepayment, "5000", model.TxStatusPending)
	pending.LoanID = &loan.ID

	positions, total := LoanLiability([]model.Transaction{repay, reversal, pending}, []model.Loan{loan, other})
	if !positions[0].Repaid.Equal(dec("800")) {
		t.Errorf("repaid = %v, want 800", positions[0].Repaid)
	}
	if !positions[0].Outstanding.Equal(dec("10200")) {
		t.Errorf("outstanding = %v, want 10200", positions[0].Outstanding)
	}
	if !positions[1].Outstanding.Equal(dec("2000")) {
		t.Errorf("other outstanding = %v, want 2000", positions[1].Outstanding)
	}
	if !total.Equal(dec("12200")) {
		t.Errorf("aggregate = %v, want 12200", total)
	}
}

func TestBalanceSheetBalancedThreshold(t *testing.T) {
	cases := []struct {
		assets, liabilities, equity string
		want                        bool
	}{
		{"1000", "400", "600", true},
		{"1000.01", "400", "600", true},  // exactly at tolerance
		{"1000.02", "400", "600", false}, // just past it
		{"999.99", "400", "600", true},
		{"990", "400", "600", false},
	}
	for _, c := range cases {
		got := BalanceSheetBalanced(dec(c.assets), dec(c.liabilities), dec(c.equity))
		if got != c.want {
			t.Errorf("BalanceSheetBalanced(%s, %s, %s) = %v, want %v", c.assets, c.liabilities, c.equity, got, c.want)
		}
	}
}

func TestRunningBalanceEmptyDatesAreConsecutive(t *testing.T) {
	points := RunningBalance(nil)
	d0, err0 := time.Parse("2006-01-02", points[0].Date)
	d1, err1 := time.Parse("2006-01-02", points[1].Date)
	if err0 != nil || err1 != nil {
		t.Fatalf("unparseable dates %q %q", points[0].Date, points[1].Date)
	}
	if d1.Sub(d0) != 24*time.Hour {
		t.Fatalf("expected one day apart, got %v", d1.Sub(d0))
	}
}
