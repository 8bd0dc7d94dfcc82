package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType constants
const (
	TxTypeCredit = "Credit"
	TxTypeDebit  = "Debit"
)

// TransactionStatus constants
const (
	TxStatusPending  = "Pending"
	TxStatusApproved = "Approved"
	TxStatusRejected = "Rejected"
)

// CategoryType constants
const (
	CategoryTypeRevenue   = "Revenue"
	CategoryTypeExpense   = "Expense"
	CategoryTypeAsset     = "Asset"
	CategoryTypeLiability = "Liability"
	CategoryTypeEquity    = "Equity"
)

// Reserved category names carrying special ledger semantics
const (
	CategorySavings        = "Savings"
	CategoryCOGS           = "COGS"
	CategoryLoanRepayment  = "Loan Repayment"
	CategoryEquipment      = "Equipment"
	CategoryFounderCapital = "Founder Capital"
)

// Transaction is a single ledger entry. Pending entries are invisible to
// every balance computation until a CFO approves them; rejection is terminal.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Date        string          `gorm:"type:varchar(10);not null;index" json:"date"` // yyyy-mm-dd
	Type        string          `gorm:"type:varchar(10);not null" json:"type"`       // Credit, Debit
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Memo        string          `gorm:"type:text;not null" json:"memo"`
	SubmittedBy *uuid.UUID      `gorm:"type:uuid;index" json:"submitted_by"`
	Submitter   *Employee       `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ApprovedBy  *uuid.UUID      `gorm:"type:uuid" json:"approved_by"`
	Approver    *Employee       `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	LoanID      *uuid.UUID      `gorm:"type:uuid;index" json:"loan_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SignedAmount returns the amount with Credit positive and Debit negative.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TxTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Category classifies transactions for P&L and balance-sheet rollups
type Category struct {
	Name      string    `gorm:"type:varchar(100);primaryKey" json:"name"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"` // Revenue, Expense, Asset, Liability, Equity
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
