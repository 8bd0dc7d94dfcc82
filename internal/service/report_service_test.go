package service

import (
	"context"
	"testing"

	"brewhouse/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedApprovedTx(t *testing.T, db *gorm.DB, date, txType, category, amount string) {
	t.Helper()
	tx := &model.Transaction{
		Date:     date,
		Type:     txType,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Memo:     "seeded",
		Status:   model.TxStatusApproved,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
}

func seedReportCategories(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedCategory(t, db, "Sales", model.CategoryTypeRevenue)
	seedCategory(t, db, "Ingredients", model.CategoryTypeExpense)
	seedCategory(t, db, model.CategoryCOGS, model.CategoryTypeExpense)
	seedCategory(t, db, model.CategoryFounderCapital, model.CategoryTypeEquity)
	seedCategory(t, db, "Loan Proceeds", model.CategoryTypeLiability)
}

func TestBalanceSheetBalancesWithFounderCapital(t *testing.T) {
	db := setupTestDB(t, "report_founder")
	svc := newTestReportService(db)
	seedReportCategories(t, db)

	seedApprovedTx(t, db, "2026-01-05", model.TxTypeCredit, model.CategoryFounderCapital, "1000.00")

	sheet, err := svc.BalanceSheet(context.Background())
	if err != nil {
		t.Fatalf("balance sheet failed: %v", err)
	}

	if !sheet.Cash.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected cash 1000.00, got %s", sheet.Cash)
	}
	if !sheet.FounderCapital.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected founder capital 1000.00, got %s", sheet.FounderCapital)
	}
	if !sheet.RetainedEarnings.IsZero() {
		t.Errorf("expected zero retained earnings, got %s", sheet.RetainedEarnings)
	}
	if !sheet.Balanced {
		t.Errorf("expected balanced sheet: assets=%s liabilities=%s equity=%s",
			sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)
	}
}

func TestBalanceSheetBalancesWithLoanAndEarnings(t *testing.T) {
	db := setupTestDB(t, "report_loan")
	svc := newTestReportService(db)
	seedReportCategories(t, db)

	loan := &model.Loan{
		Name:            "Kettle loan",
		Lender:          "Credit union",
		PrincipalAmount: decimal.RequireFromString("1000.00"),
		InterestRate:    decimal.Zero,
		TermMonths:      12,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to seed loan: %v", err)
	}

	seedApprovedTx(t, db, "2026-01-05", model.TxTypeCredit, "Loan Proceeds", "1000.00")
	seedApprovedTx(t, db, "2026-01-10", model.TxTypeCredit, "Sales", "800.00")
	seedApprovedTx(t, db, "2026-01-12", model.TxTypeDebit, "Ingredients", "300.00")

	sheet, err := svc.BalanceSheet(context.Background())
	if err != nil {
		t.Fatalf("balance sheet failed: %v", err)
	}

	// Cash 1500 = 1000 proceeds + 800 sales − 300 ingredients
	if !sheet.Cash.Equal(decimal.RequireFromString("1500.00")) {
		t.Errorf("expected cash 1500.00, got %s", sheet.Cash)
	}
	if !sheet.LoanLiability.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected loan liability 1000.00, got %s", sheet.LoanLiability)
	}
	if !sheet.RetainedEarnings.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("expected retained earnings 500.00, got %s", sheet.RetainedEarnings)
	}
	if !sheet.Balanced {
		t.Errorf("expected balanced sheet: assets=%s liabilities=%s equity=%s",
			sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)
	}
}

func TestIncomeStatementSeparatesCOGS(t *testing.T) {
	db := setupTestDB(t, "report_income")
	svc := newTestReportService(db)
	seedReportCategories(t, db)

	seedApprovedTx(t, db, "2026-01-10", model.TxTypeCredit, "Sales", "1000.00")
	seedApprovedTx(t, db, "2026-01-11", model.TxTypeDebit, model.CategoryCOGS, "300.00")
	seedApprovedTx(t, db, "2026-01-12", model.TxTypeDebit, "Ingredients", "200.00")

	income, err := svc.IncomeStatement(context.Background())
	if err != nil {
		t.Fatalf("income statement failed: %v", err)
	}

	if !income.Revenue.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected revenue 1000.00, got %s", income.Revenue)
	}
	if !income.COGS.Equal(decimal.RequireFromString("300.00")) {
		t.Errorf("expected COGS 300.00, got %s", income.COGS)
	}
	if !income.GrossProfit.Equal(decimal.RequireFromString("700.00")) {
		t.Errorf("expected gross profit 700.00, got %s", income.GrossProfit)
	}
	if income.GrossMargin != "70" {
		t.Errorf("expected gross margin 70, got %q", income.GrossMargin)
	}
	if !income.NetIncome.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("expected net income 500.00, got %s", income.NetIncome)
	}
}

func TestMDAInterpolatesComputedFigures(t *testing.T) {
	db := setupTestDB(t, "report_mda")
	svc := newTestReportService(db)
	seedReportCategories(t, db)

	seedApprovedTx(t, db, "2026-01-10", model.TxTypeCredit, "Sales", "1000.00")

	report, err := svc.MDA(context.Background())
	if err != nil {
		t.Fatalf("mda failed: %v", err)
	}
	if len(report.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(report.Sections))
	}
	for _, section := range report.Sections {
		if section.Title == "" || section.Body == "" {
			t.Errorf("expected populated section, got %+v", section)
		}
	}
}
