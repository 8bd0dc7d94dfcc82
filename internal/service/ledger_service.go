package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brewhouse/internal/finance"
	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMemoRequired       = errors.New("memo is required")
	ErrTransactionDecided = errors.New("transaction has already been approved or rejected")
	ErrUnknownCategory    = errors.New("unknown category")
)

type CreateTransactionRequest struct {
	Date     string          `json:"date"` // yyyy-mm-dd, defaults to today
	Type     string          `json:"type" binding:"required,oneof=Credit Debit"`
	Category string          `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Memo     string          `json:"memo"`
	LoanID   string          `json:"loan_id"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=Revenue Expense Asset Liability Equity"`
}

// LedgerOverview bundles the derived aggregates the treasury page renders.
type LedgerOverview struct {
	Summary        finance.Summary        `json:"summary"`
	RunningBalance []finance.BalancePoint `json:"running_balance"`
	Savings        decimal.Decimal        `json:"savings"`
	LoanLiability  decimal.Decimal        `json:"loan_liability"`
}

// LedgerService owns transaction entry, the CFO approval gate, and the
// category classification table.
type LedgerService interface {
	CreateTransaction(ctx context.Context, actorID, actorRole string, req CreateTransactionRequest) (*model.Transaction, error)
	Approve(ctx context.Context, actorID string, id string) (*model.Transaction, error)
	Reject(ctx context.Context, actorID string, id string) (*model.Transaction, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Transaction, int64, error)
	PendingQueue(ctx context.Context, page, limit int) ([]model.Transaction, int64, error)
	Overview(ctx context.Context) (*LedgerOverview, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, actorID string, req CreateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, actorID string, name string) error
}

type ledgerService struct {
	txRepo       repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	loanRepo     repository.LoanRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewLedgerService(
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	loanRepo repository.LoanRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LedgerService {
	return &ledgerService{
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		loanRepo:     loanRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *ledgerService) CreateTransaction(ctx context.Context, actorID, actorRole string, req CreateTransactionRequest) (*model.Transaction, error) {
	if strings.TrimSpace(req.Memo) == "" {
		return nil, ErrMemoRequired
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, errors.New("amount must be positive")
	}

	if _, err := s.categoryRepo.FindByName(ctx, req.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, errors.New("date must be yyyy-mm-dd")
	}

	var submitter *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		submitter = &parsed
	}

	var loanID *uuid.UUID
	if req.LoanID != "" {
		parsed, err := uuid.Parse(req.LoanID)
		if err != nil {
			return nil, fmt.Errorf("invalid loan id: %w", err)
		}
		if _, err := s.loanRepo.FindByID(ctx, parsed); err != nil {
			return nil, errors.New("loan not found")
		}
		loanID = &parsed
	}

	tx := &model.Transaction{
		Date:        date,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Memo:        strings.TrimSpace(req.Memo),
		SubmittedBy: submitter,
		Status:      model.TxStatusPending,
		LoanID:      loanID,
	}

	// CFO submissions skip the audit queue
	if actorRole == model.RoleCFO {
		tx.Status = model.TxStatusApproved
		tx.ApprovedBy = submitter
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.txRepo.Create(txCtx, tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"date":     tx.Date,
			"type":     tx.Type,
			"category": tx.Category,
			"amount":   tx.Amount,
			"status":   tx.Status,
		})
		audit := &model.AuditLog{
			EmployeeID: submitter,
			Action:     model.ActionCreateTransaction,
			EntityID:   tx.ID.String(),
			EntityName: tx.Category,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *ledgerService) decide(ctx context.Context, actorID, id, status, action string) (*model.Transaction, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id: %w", err)
	}
	approver, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}

	var tx *model.Transaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		tx, findErr = s.txRepo.FindByID(txCtx, txID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return errors.New("transaction not found")
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		// Pending → Approved|Rejected exactly once
		if tx.Status != model.TxStatusPending {
			return ErrTransactionDecided
		}

		tx.Status = status
		tx.ApprovedBy = &approver
		if err := s.txRepo.Update(txCtx, tx); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"category": tx.Category,
			"amount":   tx.Amount,
			"decision": status,
		})
		audit := &model.AuditLog{
			EmployeeID: &approver,
			Action:     action,
			EntityID:   tx.ID.String(),
			EntityName: tx.Category,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *ledgerService) Approve(ctx context.Context, actorID string, id string) (*model.Transaction, error) {
	return s.decide(ctx, actorID, id, model.TxStatusApproved, model.ActionApproveTransaction)
}

func (s *ledgerService) Reject(ctx context.Context, actorID string, id string) (*model.Transaction, error) {
	return s.decide(ctx, actorID, id, model.TxStatusRejected, model.ActionRejectTransaction)
}

func (s *ledgerService) List(ctx context.Context, status string, page, limit int) ([]model.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.txRepo.List(ctx, status, page, limit)
}

func (s *ledgerService) PendingQueue(ctx context.Context, page, limit int) ([]model.Transaction, int64, error) {
	return s.List(ctx, model.TxStatusPending, page, limit)
}

// Overview recomputes every derived aggregate from a full fetch. Small
// ledger, no caching.
func (s *ledgerService) Overview(ctx context.Context) (*LedgerOverview, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loans: %w", err)
	}

	_, liability := finance.LoanLiability(txs, loans)

	return &LedgerOverview{
		Summary:        finance.Summarize(txs, categories),
		RunningBalance: finance.RunningBalance(txs),
		Savings:        finance.SavingsBalance(txs),
		LoanLiability:  liability,
	}, nil
}

func (s *ledgerService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *ledgerService) CreateCategory(ctx context.Context, actorID string, req CreateCategoryRequest) (*model.Category, error) {
	if _, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		return nil, errors.New("category already exists")
	}

	category := &model.Category{Name: req.Name, Type: req.Type}

	var actor *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		actor = &parsed
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.Create(txCtx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		audit := &model.AuditLog{
			EmployeeID: actor,
			Action:     model.ActionCreateCategory,
			EntityID:   category.Name,
			EntityName: category.Name,
			Details:    fmt.Sprintf(`{"type":%q}`, category.Type),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ledgerService) DeleteCategory(ctx context.Context, actorID string, name string) error {
	if _, err := s.categoryRepo.FindByName(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var actor *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		actor = &parsed
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.Delete(txCtx, name); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		audit := &model.AuditLog{
			EmployeeID: actor,
			Action:     model.ActionDeleteCategory,
			EntityID:   name,
			EntityName: name,
			Details:    `{"deleted": true}`,
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}
