package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"brewhouse/internal/finance"
	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateLoanRequest struct {
	Name            string          `json:"name" binding:"required"`
	Lender          string          `json:"lender" binding:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" binding:"required"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TermMonths      int             `json:"term_months"`
	StartDate       string          `json:"start_date"`
	Notes           string          `json:"notes"`
}

type UpdateLoanRequest struct {
	Name   string `json:"name"`
	Lender string `json:"lender"`
	Notes  string `json:"notes"`
}

// AmortizationRow is one installment of the flat display schedule.
type AmortizationRow struct {
	Installment int             `json:"installment"`
	Payment     decimal.Decimal `json:"payment"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// LoanDetail combines the stored loan with its derived repayment position
// and display schedule.
type LoanDetail struct {
	finance.LoanPosition
	Schedule []AmortizationRow `json:"schedule"`
}

type LoanService interface {
	Create(ctx context.Context, actorID string, req CreateLoanRequest) (*model.Loan, error)
	Update(ctx context.Context, actorID string, id string, req UpdateLoanRequest) (*model.Loan, error)
	Delete(ctx context.Context, actorID string, id string) error
	List(ctx context.Context) ([]finance.LoanPosition, decimal.Decimal, error)
	Get(ctx context.Context, id string) (*LoanDetail, error)
}

type loanService struct {
	loanRepo  repository.LoanRepository
	txRepo    repository.TransactionRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	txRepo repository.TransactionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LoanService {
	return &loanService{loanRepo: loanRepo, txRepo: txRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *loanService) audited(ctx context.Context, actorID, action, entityID, entityName string, details interface{}, fn func(txCtx context.Context) error) error {
	var actor *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		actor = &parsed
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := fn(txCtx); err != nil {
			return err
		}
		payload, _ := json.Marshal(details)
		audit := &model.AuditLog{
			EmployeeID: actor,
			Action:     action,
			EntityID:   entityID,
			EntityName: entityName,
			Details:    string(payload),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

func (s *loanService) Create(ctx context.Context, actorID string, req CreateLoanRequest) (*model.Loan, error) {
	if req.PrincipalAmount.IsNegative() || req.PrincipalAmount.IsZero() {
		return nil, errors.New("principal must be positive")
	}
	if req.InterestRate.IsNegative() {
		return nil, errors.New("interest rate cannot be negative")
	}

	loan := &model.Loan{
		Name:            req.Name,
		Lender:          req.Lender,
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		StartDate:       req.StartDate,
		Notes:           req.Notes,
	}
	if loan.TermMonths <= 0 {
		loan.TermMonths = 12
	}

	err := s.audited(ctx, actorID, model.ActionCreateLoan, "", req.Name, req, func(txCtx context.Context) error {
		if err := s.loanRepo.Create(txCtx, loan); err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) Update(ctx context.Context, actorID string, id string, req UpdateLoanRequest) (*model.Loan, error) {
	loanID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid loan id: %w", err)
	}
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("loan not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Principal and rate are immutable once recorded: liability history
	// derives from them.
	if req.Name != "" {
		loan.Name = req.Name
	}
	if req.Lender != "" {
		loan.Lender = req.Lender
	}
	if req.Notes != "" {
		loan.Notes = req.Notes
	}

	err = s.audited(ctx, actorID, model.ActionUpdateLoan, loan.ID.String(), loan.Name, req, func(txCtx context.Context) error {
		return s.loanRepo.Update(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) Delete(ctx context.Context, actorID string, id string) error {
	loanID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid loan id: %w", err)
	}
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("loan not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.audited(ctx, actorID, model.ActionDeleteLoan, loan.ID.String(), loan.Name, map[string]bool{"deleted": true}, func(txCtx context.Context) error {
		return s.loanRepo.Delete(txCtx, loanID)
	})
}

func (s *loanService) List(ctx context.Context) ([]finance.LoanPosition, decimal.Decimal, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to fetch loans: %w", err)
	}
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	positions, total := finance.LoanLiability(txs, loans)
	return positions, total, nil
}

func (s *loanService) Get(ctx context.Context, id string) (*LoanDetail, error) {
	loanID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid loan id: %w", err)
	}
	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("loan not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	positions, _ := finance.LoanLiability(txs, []model.Loan{*loan})
	detail := &LoanDetail{
		LoanPosition: positions[0],
		Schedule:     amortizationSchedule(*loan),
	}
	return detail, nil
}

// amortizationSchedule splits the flat total owed into equal installments
// over the loan term for display. Interest does not accrue over time.
func amortizationSchedule(loan model.Loan) []AmortizationRow {
	months := loan.TermMonths
	if months <= 0 {
		months = 12
	}

	total := loan.TotalOwed()
	payment := total.Div(decimal.NewFromInt(int64(months))).Round(2)

	rows := make([]AmortizationRow, 0, months)
	remaining := total
	for i := 1; i <= months; i++ {
		if i == months {
			// Last installment absorbs rounding drift
			payment = remaining
		}
		remaining = remaining.Sub(payment)
		rows = append(rows, AmortizationRow{
			Installment: i,
			Payment:     payment,
			Remaining:   remaining,
		})
	}
	return rows
}
