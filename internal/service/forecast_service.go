package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	forecastTrailingWeeks = 8
	forecastHorizonWeeks  = 4
)

// WeeklyFlow is one week of observed or projected cash flow.
type WeeklyFlow struct {
	WeekStart string          `json:"week_start"` // Monday, yyyy-mm-dd
	Revenue   decimal.Decimal `json:"revenue"`
	Expense   decimal.Decimal `json:"expense"`
	Net       decimal.Decimal `json:"net"`
	Projected bool            `json:"projected"`
}

// ProductDemand aggregates delivered volume per product over the trailing
// window, with a simple weekly-average projection.
type ProductDemand struct {
	ProductName     string          `json:"product_name"`
	UnitsDelivered  int             `json:"units_delivered"`
	RevenueRealized decimal.Decimal `json:"revenue_realized"`
	WeeklyAvgUnits  decimal.Decimal `json:"weekly_avg_units"`
}

// Forecast is the CFO cash-flow projection.
type Forecast struct {
	TrailingWeeks int             `json:"trailing_weeks"`
	HorizonWeeks  int             `json:"horizon_weeks"`
	History       []WeeklyFlow    `json:"history"`
	Projection    []WeeklyFlow    `json:"projection"`
	AvgWeeklyNet  decimal.Decimal `json:"avg_weekly_net"`
	Demand        []ProductDemand `json:"demand"`
}

type ForecastService interface {
	CashFlow(ctx context.Context) (*Forecast, error)
}

type forecastService struct {
	txRepo       repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
	now          func() time.Time
}

func NewForecastService(
	txRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	orderRepo repository.OrderRepository,
) ForecastService {
	return &forecastService{
		txRepo:       txRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		now:          time.Now,
	}
}

// weekStart truncates to the Monday of t's week.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

func (s *forecastService) CashFlow(ctx context.Context) (*Forecast, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	typeOf := make(map[string]string, len(categories))
	for _, c := range categories {
		typeOf[c.Name] = c.Type
	}

	currentWeek := weekStart(s.now())
	windowStart := currentWeek.AddDate(0, 0, -7*forecastTrailingWeeks)

	// Bucket operating revenue and expense into trailing weeks. Transfers
	// and balance-sheet categories don't belong in a cash-flow trend.
	revenueByWeek := make(map[string]decimal.Decimal)
	expenseByWeek := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Status != model.TxStatusApproved {
			continue
		}
		day, parseErr := time.Parse("2006-01-02", t.Date)
		if parseErr != nil {
			continue
		}
		if day.Before(windowStart) || !day.Before(currentWeek) {
			continue
		}
		week := weekStart(day).Format("2006-01-02")
		switch typeOf[t.Category] {
		case model.CategoryTypeRevenue:
			revenueByWeek[week] = revenueByWeek[week].Add(t.SignedAmount())
		case model.CategoryTypeExpense:
			expenseByWeek[week] = expenseByWeek[week].Sub(t.SignedAmount())
		}
	}

	history := make([]WeeklyFlow, 0, forecastTrailingWeeks)
	totalRevenue, totalExpense := decimal.Zero, decimal.Zero
	for i := forecastTrailingWeeks; i >= 1; i-- {
		week := currentWeek.AddDate(0, 0, -7*i).Format("2006-01-02")
		rev, exp := revenueByWeek[week], expenseByWeek[week]
		history = append(history, WeeklyFlow{
			WeekStart: week,
			Revenue:   rev,
			Expense:   exp,
			Net:       rev.Sub(exp),
		})
		totalRevenue = totalRevenue.Add(rev)
		totalExpense = totalExpense.Add(exp)
	}

	weeks := decimal.NewFromInt(forecastTrailingWeeks)
	avgRevenue := totalRevenue.Div(weeks).Round(2)
	avgExpense := totalExpense.Div(weeks).Round(2)

	// Flat projection: each future week repeats the trailing average.
	projection := make([]WeeklyFlow, 0, forecastHorizonWeeks)
	for i := 0; i < forecastHorizonWeeks; i++ {
		projection = append(projection, WeeklyFlow{
			WeekStart: currentWeek.AddDate(0, 0, 7*i).Format("2006-01-02"),
			Revenue:   avgRevenue,
			Expense:   avgExpense,
			Net:       avgRevenue.Sub(avgExpense),
			Projected: true,
		})
	}

	demand, err := s.productDemand(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	return &Forecast{
		TrailingWeeks: forecastTrailingWeeks,
		HorizonWeeks:  forecastHorizonWeeks,
		History:       history,
		Projection:    projection,
		AvgWeeklyNet:  avgRevenue.Sub(avgExpense),
		Demand:        demand,
	}, nil
}

func (s *forecastService) productDemand(ctx context.Context, windowStart time.Time) ([]ProductDemand, error) {
	delivered, err := s.orderRepo.ListByStatuses(ctx, []string{model.OrderStatusDelivered})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch delivered orders: %w", err)
	}

	units := make(map[string]int)
	revenue := make(map[string]decimal.Decimal)
	for _, order := range delivered {
		if order.StatusUpdatedAt.Before(windowStart) {
			continue
		}
		for _, item := range order.Items {
			units[item.ProductName] += item.Quantity
			revenue[item.ProductName] = revenue[item.ProductName].Add(item.Subtotal)
		}
	}

	weeks := decimal.NewFromInt(forecastTrailingWeeks)
	demand := make([]ProductDemand, 0, len(units))
	for name, n := range units {
		demand = append(demand, ProductDemand{
			ProductName:     name,
			UnitsDelivered:  n,
			RevenueRealized: revenue[name],
			WeeklyAvgUnits:  decimal.NewFromInt(int64(n)).Div(weeks).Round(2),
		})
	}
	sort.Slice(demand, func(i, j int) bool {
		return demand[i].UnitsDelivered > demand[j].UnitsDelivered
	})
	return demand, nil
}
