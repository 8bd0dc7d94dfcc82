package service

import (
	"context"
	"fmt"

	"brewhouse/internal/finance"
	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/shopspring/decimal"
)

// IncomeStatement is the single-period P&L.
type IncomeStatement struct {
	Revenue           decimal.Decimal            `json:"revenue"`
	COGS              decimal.Decimal            `json:"cogs"`
	GrossProfit       decimal.Decimal            `json:"gross_profit"`
	GrossMargin       string                     `json:"gross_margin"`
	ExpensesByCategoy map[string]decimal.Decimal `json:"expenses_by_category"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	NetIncome         decimal.Decimal            `json:"net_income"`
}

// BalanceSheet models assets = liabilities + equity with an integrity flag.
type BalanceSheet struct {
	Cash             decimal.Decimal `json:"cash"`
	Savings          decimal.Decimal `json:"savings"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	Equipment        decimal.Decimal `json:"equipment"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	LoanLiability    decimal.Decimal `json:"loan_liability"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	FounderCapital   decimal.Decimal `json:"founder_capital"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	Balanced         bool            `json:"balanced"`
}

// EquityStatement breaks out the ownership side of the balance sheet.
type EquityStatement struct {
	FounderCapital   decimal.Decimal `json:"founder_capital"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// MDAReport is the Management Discussion & Analysis narrative.
type MDAReport struct {
	Sections []MDASection `json:"sections"`
}

type MDASection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ReportService interface {
	IncomeStatement(ctx context.Context) (*IncomeStatement, error)
	BalanceSheet(ctx context.Context) (*BalanceSheet, error)
	EquityStatement(ctx context.Context) (*EquityStatement, error)
	MDA(ctx context.Context) (*MDAReport, error)
}

type reportService struct {
	txRepo        repository.TransactionRepository
	categoryRepo  repository.CategoryRepository
	loanRepo      repository.LoanRepository
	inventoryRepo repository.InventoryRepository
}

func NewReportService(
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	loanRepo repository.LoanRepository,
	inventoryRepo repository.InventoryRepository,
) ReportService {
	return &reportService{
		txRepo:        txRepo,
		categoryRepo:  categoryRepo,
		loanRepo:      loanRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *reportService) fetchLedger(ctx context.Context) ([]model.Transaction, []model.Category, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return txs, categories, nil
}

// categoryNet returns Approved debit-minus-credit per category restricted to
// one category type.
func categoryNet(txs []model.Transaction, categories []model.Category, catType string) map[string]decimal.Decimal {
	typeOf := make(map[string]string, len(categories))
	for _, c := range categories {
		typeOf[c.Name] = c.Type
	}

	net := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Status != model.TxStatusApproved || typeOf[t.Category] != catType {
			continue
		}
		net[t.Category] = net[t.Category].Sub(t.SignedAmount())
	}
	return net
}

func (s *reportService) IncomeStatement(ctx context.Context) (*IncomeStatement, error) {
	txs, categories, err := s.fetchLedger(ctx)
	if err != nil {
		return nil, err
	}

	summary := finance.Summarize(txs, categories)
	return &IncomeStatement{
		Revenue:           summary.Revenue,
		COGS:              summary.COGS,
		GrossProfit:       summary.GrossProfit,
		GrossMargin:       summary.GrossMargin,
		ExpensesByCategoy: categoryNet(txs, categories, model.CategoryTypeExpense),
		TotalExpenses:     summary.Expense,
		NetIncome:         summary.NetIncome,
	}, nil
}

// netCredits sums Approved credit-minus-debit for a single category name.
func netCredits(txs []model.Transaction, category string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status != model.TxStatusApproved || t.Category != category {
			continue
		}
		total = total.Add(t.SignedAmount())
	}
	return total
}

func (s *reportService) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	txs, categories, err := s.fetchLedger(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loans: %w", err)
	}
	items, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	summary := finance.Summarize(txs, categories)
	_, liability := finance.LoanLiability(txs, loans)

	inventoryValue := decimal.Zero
	for _, item := range items {
		inventoryValue = inventoryValue.Add(item.Value())
	}

	// Equipment purchases are Debits, disposals Credits
	equipment := netCredits(txs, model.CategoryEquipment).Neg()
	founderCapital := netCredits(txs, model.CategoryFounderCapital)
	savings := finance.SavingsBalance(txs)

	sheet := &BalanceSheet{
		Cash:             summary.Treasury,
		Savings:          savings,
		InventoryValue:   inventoryValue,
		Equipment:        equipment,
		LoanLiability:    liability,
		FounderCapital:   founderCapital,
		RetainedEarnings: summary.NetIncome, // single period, no close/rollover
	}
	sheet.TotalAssets = sheet.Cash.Add(sheet.Savings).Add(sheet.InventoryValue).Add(sheet.Equipment)
	sheet.TotalLiabilities = sheet.LoanLiability
	sheet.TotalEquity = sheet.FounderCapital.Add(sheet.RetainedEarnings)
	sheet.Balanced = finance.BalanceSheetBalanced(sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)

	return sheet, nil
}

func (s *reportService) EquityStatement(ctx context.Context) (*EquityStatement, error) {
	txs, categories, err := s.fetchLedger(ctx)
	if err != nil {
		return nil, err
	}

	summary := finance.Summarize(txs, categories)
	founderCapital := netCredits(txs, model.CategoryFounderCapital)

	return &EquityStatement{
		FounderCapital:   founderCapital,
		RetainedEarnings: summary.NetIncome,
		TotalEquity:      founderCapital.Add(summary.NetIncome),
	}, nil
}

func (s *reportService) MDA(ctx context.Context) (*MDAReport, error) {
	income, err := s.IncomeStatement(ctx)
	if err != nil {
		return nil, err
	}
	sheet, err := s.BalanceSheet(ctx)
	if err != nil {
		return nil, err
	}

	liquidity := "The brewery holds no interest-bearing obligations."
	if sheet.LoanLiability.IsPositive() {
		liquidity = fmt.Sprintf(
			"Outstanding loan obligations total %s against cash and savings of %s.",
			sheet.LoanLiability.StringFixed(2),
			sheet.Cash.Add(sheet.Savings).StringFixed(2),
		)
	}

	integrity := "The balance sheet reconciles within tolerance."
	if !sheet.Balanced {
		integrity = "The balance sheet does not currently reconcile; a manual review of ledger classifications is recommended."
	}

	return &MDAReport{
		Sections: []MDASection{
			{
				Title: "Results of Operations",
				Body: fmt.Sprintf(
					"Operating revenue for the period was %s against cost of goods sold of %s, yielding a gross profit of %s (margin %s%%). Total operating expenses of %s resulted in net income of %s.",
					income.Revenue.StringFixed(2), income.COGS.StringFixed(2),
					income.GrossProfit.StringFixed(2), income.GrossMargin,
					income.TotalExpenses.StringFixed(2), income.NetIncome.StringFixed(2),
				),
			},
			{
				Title: "Liquidity and Capital Resources",
				Body: fmt.Sprintf(
					"Cash on hand is %s with %s held in savings. Inventory is carried at %s and equipment at %s. %s",
					sheet.Cash.StringFixed(2), sheet.Savings.StringFixed(2),
					sheet.InventoryValue.StringFixed(2), sheet.Equipment.StringFixed(2),
					liquidity,
				),
			},
			{
				Title: "Financial Position",
				Body: fmt.Sprintf(
					"Total assets of %s are financed by %s in liabilities and %s in equity. %s",
					sheet.TotalAssets.StringFixed(2), sheet.TotalLiabilities.StringFixed(2),
					sheet.TotalEquity.StringFixed(2), integrity,
				),
			},
		},
	}, nil
}
