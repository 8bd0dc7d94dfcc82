package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan represents borrowed capital with a flat interest rate: the total owed
// is principal * (1 + rate/100) from day one, no compounding over time.
// Outstanding liability is derived from repayment transactions, not stored.
type Loan struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Lender          string          `gorm:"type:varchar(255);not null" json:"lender"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal_amount"`
	InterestRate    decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"interest_rate"` // flat percent
	TermMonths      int             `gorm:"type:int;default:12" json:"term_months"`
	StartDate       string          `gorm:"type:varchar(10)" json:"start_date"` // yyyy-mm-dd
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TotalOwed returns principal * (1 + rate/100).
func (l Loan) TotalOwed() decimal.Decimal {
	rate := l.InterestRate.Div(decimal.NewFromInt(100))
	return l.PrincipalAmount.Mul(decimal.NewFromInt(1).Add(rate))
}
