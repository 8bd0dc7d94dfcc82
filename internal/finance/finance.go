// Package finance holds the pure derived-ledger computations. Everything
// here operates on in-memory slices and never touches the database, so the
// report and dashboard services can recompute aggregates from a fresh fetch
// on every request.
package finance

import (
	"sort"
	"time"

	"brewhouse/internal/model"

	"github.com/shopspring/decimal"
)

// BalanceSheetTolerance is the maximum absolute accounting-identity drift
// treated as balanced.
var BalanceSheetTolerance = decimal.RequireFromString("0.01")

const dateLayout = "2006-01-02"

// BalancePoint is one point of the treasury running-balance series.
type BalancePoint struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// RunningBalance builds a per-date last-value series of the treasury balance
// from Approved transactions, sorted by date ascending. An empty ledger
// yields a synthetic two-point zero series; a single-date ledger is padded
// with a zero point dated one day earlier so charts render a visible delta.
func RunningBalance(txs []model.Transaction) []BalancePoint {
	approved := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Status == model.TxStatusApproved {
			approved = append(approved, t)
		}
	}

	if len(approved) == 0 {
		today := time.Now().Format(dateLayout)
		return []BalancePoint{
			{Date: dayBefore(today), Balance: decimal.Zero},
			{Date: today, Balance: decimal.Zero},
		}
	}

	// Lexicographic compare is date order for yyyy-mm-dd; stable sort keeps
	// same-day entries in submission order.
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].Date < approved[j].Date
	})

	var points []BalancePoint
	running := decimal.Zero
	for _, t := range approved {
		running = running.Add(t.SignedAmount())
		if n := len(points); n > 0 && points[n-1].Date == t.Date {
			points[n-1].Balance = running
		} else {
			points = append(points, BalancePoint{Date: t.Date, Balance: running})
		}
	}

	if len(points) == 1 {
		points = append([]BalancePoint{{Date: dayBefore(points[0].Date), Balance: decimal.Zero}}, points...)
	}

	return points
}

func dayBefore(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, -1).Format(dateLayout)
}

// Summary aggregates the Approved ledger into treasury and P&L figures.
type Summary struct {
	Treasury    decimal.Decimal `json:"treasury"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expense     decimal.Decimal `json:"expense"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossMargin string          `json:"gross_margin"` // percent, "0" when revenue is zero
	NetIncome   decimal.Decimal `json:"net_income"`
}

// Summarize computes the treasury balance over every Approved transaction
// regardless of category, and the operating P&L restricted to categories
// classified Revenue/Expense. Transactions with a missing or differently
// typed category move cash but are excluded from the P&L.
func Summarize(txs []model.Transaction, categories []model.Category) Summary {
	catType := make(map[string]string, len(categories))
	for _, c := range categories {
		catType[c.Name] = c.Type
	}

	s := Summary{
		Treasury:    decimal.Zero,
		Revenue:     decimal.Zero,
		Expense:     decimal.Zero,
		COGS:        decimal.Zero,
		GrossProfit: decimal.Zero,
		NetIncome:   decimal.Zero,
	}

	for _, t := range txs {
		if t.Status != model.TxStatusApproved {
			continue
		}
		signed := t.SignedAmount()
		s.Treasury = s.Treasury.Add(signed)

		switch catType[t.Category] {
		case model.CategoryTypeRevenue:
			s.Revenue = s.Revenue.Add(signed)
		case model.CategoryTypeExpense:
			// Expenses are reported positive: debits add, credits (refunds) subtract.
			s.Expense = s.Expense.Sub(signed)
		}

		if t.Category == model.CategoryCOGS {
			s.COGS = s.COGS.Sub(signed)
		}
	}

	s.GrossProfit = s.Revenue.Sub(s.COGS)
	s.NetIncome = s.Revenue.Sub(s.Expense)
	if s.Revenue.IsZero() {
		s.GrossMargin = "0"
	} else {
		s.GrossMargin = s.GrossProfit.Div(s.Revenue).Mul(decimal.NewFromInt(100)).Round(2).String()
	}

	return s
}

// SavingsBalance returns the signed sum of Approved "Savings" transactions:
// Debit is money leaving treasury into savings, Credit the reverse.
func SavingsBalance(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status != model.TxStatusApproved || t.Category != model.CategorySavings {
			continue
		}
		total = total.Sub(t.SignedAmount())
	}
	return total
}

// LoanPosition is the derived repayment state of one loan.
type LoanPosition struct {
	Loan        model.Loan      `json:"loan"`
	TotalOwed   decimal.Decimal `json:"total_owed"`
	Repaid      decimal.Decimal `json:"repaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// LoanLiability derives per-loan and aggregate outstanding liability.
// Repayments are Approved "Loan Repayment" transactions tagged with the loan
// id, Debit positive and Credit negative.
func LoanLiability(txs []model.Transaction, loans []model.Loan) ([]LoanPosition, decimal.Decimal) {
	repaid := make(map[string]decimal.Decimal, len(loans))
	for _, t := range txs {
		if t.Status != model.TxStatusApproved || t.Category != model.CategoryLoanRepayment || t.LoanID == nil {
			continue
		}
		key := t.LoanID.String()
		repaid[key] = repaid[key].Sub(t.SignedAmount())
	}

	positions := make([]LoanPosition, 0, len(loans))
	total := decimal.Zero
	for _, l := range loans {
		owed := l.TotalOwed()
		paid := repaid[l.ID.String()]
		outstanding := owed.Sub(paid)
		positions = append(positions, LoanPosition{
			Loan:        l,
			TotalOwed:   owed,
			Repaid:      paid,
			Outstanding: outstanding,
		})
		total = total.Add(outstanding)
	}

	return positions, total
}

// BalanceSheetBalanced reports whether assets = liabilities + equity within
// tolerance. Mismatch is flagged, never auto-corrected.
func BalanceSheetBalanced(assets, liabilities, equity decimal.Decimal) bool {
	diff := assets.Sub(liabilities).Sub(equity).Abs()
	return diff.LessThanOrEqual(BalanceSheetTolerance)
}
