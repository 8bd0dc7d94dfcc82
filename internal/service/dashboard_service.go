package service

import (
	"context"
	"fmt"

	"brewhouse/internal/finance"
	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BrewerDashboard is the production-floor view: my work plus the shared queue.
type BrewerDashboard struct {
	MyOrders   []model.Order `json:"my_orders"`
	QueueDepth int64         `json:"queue_depth"` // unclaimed Confirmed orders
}

// OpsDashboard is the manager/CEO view.
type OpsDashboard struct {
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	EmployeeCount  int64            `json:"employee_count"`
	ProductCount   int64            `json:"product_count"`
	RecentOrders   []model.Order    `json:"recent_orders"`
}

// FinanceDashboard is the CFO view.
type FinanceDashboard struct {
	Treasury        decimal.Decimal `json:"treasury"`
	Savings         decimal.Decimal `json:"savings"`
	NetIncome       decimal.Decimal `json:"net_income"`
	LoanOutstanding decimal.Decimal `json:"loan_outstanding"`
	PendingCount    int64           `json:"pending_count"`
}

type DashboardService interface {
	Brewer(ctx context.Context, employeeID string) (*BrewerDashboard, error)
	Ops(ctx context.Context) (*OpsDashboard, error)
	Finance(ctx context.Context) (*FinanceDashboard, error)
}

type dashboardService struct {
	orderRepo    repository.OrderRepository
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	txRepo       repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	loanRepo     repository.LoanRepository
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	loanRepo repository.LoanRepository,
) DashboardService {
	return &dashboardService{
		orderRepo:    orderRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		loanRepo:     loanRepo,
	}
}

func (s *dashboardService) Brewer(ctx context.Context, employeeID string) (*BrewerDashboard, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}

	mine, _, err := s.orderRepo.List(ctx, repository.OrderFilter{
		AssignedTo: &id,
		Page:       1,
		Limit:      50,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assigned orders: %w", err)
	}

	confirmed, err := s.orderRepo.ListByStatuses(ctx, []string{model.OrderStatusConfirmed})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order queue: %w", err)
	}
	var depth int64
	for _, order := range confirmed {
		if order.AssignedTo == nil {
			depth++
		}
	}

	return &BrewerDashboard{MyOrders: mine, QueueDepth: depth}, nil
}

func (s *dashboardService) Ops(ctx context.Context) (*OpsDashboard, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	_, employeeCount, err := s.employeeRepo.List(ctx, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	_, productCount, err := s.productRepo.List(ctx, false, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	recent, _, err := s.orderRepo.List(ctx, repository.OrderFilter{Page: 1, Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	return &OpsDashboard{
		OrdersByStatus: counts,
		EmployeeCount:  employeeCount,
		ProductCount:   productCount,
		RecentOrders:   recent,
	}, nil
}

func (s *dashboardService) Finance(ctx context.Context) (*FinanceDashboard, error) {
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
	_, pendingCount, err := s.txRepo.List(ctx, model.TxStatusPending, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending transactions: %w", err)
	}

	summary := finance.Summarize(txs, categories)
	_, outstanding := finance.LoanLiability(txs, loans)

	return &FinanceDashboard{
		Treasury:        summary.Treasury,
		Savings:         finance.SavingsBalance(txs),
		NetIncome:       summary.NetIncome,
		LoanOutstanding: outstanding,
		PendingCount:    pendingCount,
	}, nil
}
