package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"brewhouse/internal/model"
	"brewhouse/internal/repository"
	ws "brewhouse/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderTerminal      = errors.New("order is in a terminal state")
	ErrNoTransition       = errors.New("no transition defined from current status")
	ErrCancelReason       = errors.New("cancellation requires a non-empty reason")
	ErrAlreadyAssigned    = errors.New("order already has an assignee")
	ErrNotAssignable      = errors.New("order status does not allow assignment")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotCurrentAssignee = errors.New("order is assigned to someone else")
)

// DTOs
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerName     string             `json:"customer_name" binding:"required"`
	CustomerDiscord  string             `json:"customer_discord"`
	DeliveryMethod   string             `json:"delivery_method"`
	DeliveryLocation string             `json:"delivery_location"`
	Notes            string             `json:"notes"`
	Status           string             `json:"status"` // staff may start Submitted or Confirmed
	Items            []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderService interface {
	Create(ctx context.Context, actorID string, req CreateOrderRequest) (*model.Order, error)
	CreatePublic(ctx context.Context, req CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, status string, page, limit int) ([]model.Order, int64, error)
	ListMine(ctx context.Context, actorID string) ([]model.Order, error)
	ProductionQueue(ctx context.Context) ([]model.Order, error)
	Advance(ctx context.Context, actorID string, id string) (*model.Order, error)
	Cancel(ctx context.Context, actorID string, id string, reason string) (*model.Order, error)
	Claim(ctx context.Context, actorID string, id string) (*model.Order, error)
	Release(ctx context.Context, actorID string, id string) (*model.Order, error)
	Assign(ctx context.Context, actorID string, id string, employeeID string) (*model.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

func (s *orderService) broadcast(event string, order *model.Order) {
	if s.hub == nil {
		return
	}
	e := ws.OrderEvent{Event: event, OrderID: order.ID.String(), Status: order.Status}
	if order.AssignedTo != nil {
		e.AssignedTo = order.AssignedTo.String()
	}
	s.hub.BroadcastOrderEvent(e)
}

// buildItems prices line items from the product table server-side and
// returns the items plus the order total.
func (s *orderService) buildItems(ctx context.Context, reqs []OrderItemRequest) ([]model.OrderItem, decimal.Decimal, error) {
	items := make([]model.OrderItem, 0, len(reqs))
	total := decimal.Zero

	for _, itemReq := range reqs {
		pid, err := uuid.Parse(itemReq.ProductID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid product_id: %w", err)
		}
		product, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, fmt.Errorf("product not found: %s", itemReq.ProductID)
			}
			return nil, decimal.Zero, fmt.Errorf("failed to find product %s: %w", itemReq.ProductID, err)
		}
		if !product.Active {
			return nil, decimal.Zero, fmt.Errorf("product not available: %s", product.Name)
		}

		subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(itemReq.Quantity)))
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    itemReq.Quantity,
			UnitPrice:   product.UnitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	return items, total, nil
}

func (s *orderService) create(ctx context.Context, actor *uuid.UUID, req CreateOrderRequest, status string) (*model.Order, error) {
	order := &model.Order{
		CustomerName:     req.CustomerName,
		CustomerDiscord:  req.CustomerDiscord,
		DeliveryMethod:   req.DeliveryMethod,
		DeliveryLocation: req.DeliveryLocation,
		Notes:            req.Notes,
		Status:           status,
		StatusUpdatedAt:  time.Now(),
	}

	// Order and items are one transaction so a failure between the two
	// writes can never leave an order with no items.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items, total, err := s.buildItems(txCtx, req.Items)
		if err != nil {
			return err
		}

		order.TotalCost = total
		if err := s.orderRepo.Create(txCtx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderRepo.CreateItems(txCtx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = items

		details, _ := json.Marshal(map[string]interface{}{
			"customer":   req.CustomerName,
			"status":     status,
			"total_cost": order.TotalCost,
			"items":      len(items),
		})
		audit := &model.AuditLog{
			EmployeeID: actor,
			Action:     model.ActionCreateOrder,
			EntityID:   order.ID.String(),
			EntityName: req.CustomerName,
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

	s.broadcast("order_created", order)
	return order, nil
}

func (s *orderService) Create(ctx context.Context, actorID string, req CreateOrderRequest) (*model.Order, error) {
	status := req.Status
	if status == "" {
		status = model.OrderStatusSubmitted
	}
	if status != model.OrderStatusSubmitted && status != model.OrderStatusConfirmed {
		return nil, errors.New("new orders must start Submitted or Confirmed")
	}

	var actor *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		actor = &parsed
	}
	return s.create(ctx, actor, req, status)
}

// CreatePublic handles the self-service order form: no authentication, order
// always enters Submitted.
func (s *orderService) CreatePublic(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, errors.New("customer name is required")
	}
	return s.create(ctx, nil, req, model.OrderStatusSubmitted)
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}
	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, status string, page, limit int) ([]model.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.orderRepo.List(ctx, repository.OrderFilter{Status: status, Page: page, Limit: limit})
}

func (s *orderService) ListMine(ctx context.Context, actorID string) ([]model.Order, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}
	orders, _, err := s.orderRepo.List(ctx, repository.OrderFilter{AssignedTo: &id, Page: 1, Limit: 100})
	return orders, err
}

func (s *orderService) ProductionQueue(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.ListByStatuses(ctx, []string{model.OrderStatusConfirmed, model.OrderStatusInProduction})
}

// mutate loads the order, applies fn, and persists with an audit entry, all
// inside one transaction. fn returning an error aborts before any write.
func (s *orderService) mutate(ctx context.Context, actorID, id, action string, fn func(order *model.Order) (map[string]interface{}, error)) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	var actor *uuid.UUID
	if parsed, err := uuid.Parse(actorID); err == nil {
		actor = &parsed
	}

	var order *model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		order, findErr = s.orderRepo.FindByIDWithItems(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		details, fnErr := fn(order)
		if fnErr != nil {
			return fnErr
		}

		order.StatusUpdatedAt = time.Now()
		if err := s.orderRepo.Update(txCtx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		payload, _ := json.Marshal(details)
		audit := &model.AuditLog{
			EmployeeID: actor,
			Action:     action,
			EntityID:   order.ID.String(),
			EntityName: order.CustomerName,
			Details:    string(payload),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Advance(ctx context.Context, actorID string, id string) (*model.Order, error) {
	order, err := s.mutate(ctx, actorID, id, model.ActionAdvanceOrder, func(order *model.Order) (map[string]interface{}, error) {
		next, ok := model.NextOrderStatus(order.Status)
		if !ok {
			if model.OrderStatusTerminal(order.Status) {
				return nil, ErrOrderTerminal
			}
			return nil, ErrNoTransition
		}

		from := order.Status
		order.Status = next
		if next == model.OrderStatusConfirmed {
			order.PaymentConfirmed = true
		}
		return map[string]interface{}{"from": from, "to": next}, nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_status_changed", order)
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, actorID string, id string, reason string) (*model.Order, error) {
	// Validate before any load or write
	if strings.TrimSpace(reason) == "" {
		return nil, ErrCancelReason
	}

	order, err := s.mutate(ctx, actorID, id, model.ActionCancelOrder, func(order *model.Order) (map[string]interface{}, error) {
		if model.OrderStatusTerminal(order.Status) {
			return nil, ErrOrderTerminal
		}

		from := order.Status
		marker := "[CANCELLED] " + strings.TrimSpace(reason)
		if order.Notes == "" {
			order.Notes = marker
		} else {
			// Prior notes preserved, marker appended
			order.Notes = order.Notes + "\n" + marker
		}
		order.Status = model.OrderStatusCancelled
		return map[string]interface{}{"from": from, "reason": reason}, nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_status_changed", order)
	return order, nil
}

// Claim fuses assignment and the Confirmed → In Production transition: there
// is no "claimed but not started" state.
func (s *orderService) Claim(ctx context.Context, actorID string, id string) (*model.Order, error) {
	claimant, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}

	order, err := s.mutate(ctx, actorID, id, model.ActionClaimOrder, func(order *model.Order) (map[string]interface{}, error) {
		if order.Status != model.OrderStatusConfirmed {
			return nil, errors.New("only Confirmed orders can be claimed")
		}
		if order.AssignedTo != nil {
			return nil, ErrAlreadyAssigned
		}
		order.AssignedTo = &claimant
		order.Status = model.OrderStatusInProduction
		return map[string]interface{}{"assigned_to": claimant.String()}, nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_assigned", order)
	return order, nil
}

// Release clears the assignee and reverts In Production → Confirmed, the
// derived-status behavior of the production queue.
func (s *orderService) Release(ctx context.Context, actorID string, id string) (*model.Order, error) {
	releaser, err := uuid.Parse(actorID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}

	order, err := s.mutate(ctx, actorID, id, model.ActionReleaseOrder, func(order *model.Order) (map[string]interface{}, error) {
		if order.Status != model.OrderStatusInProduction {
			return nil, errors.New("only In Production orders can be released")
		}
		if order.AssignedTo == nil || *order.AssignedTo != releaser {
			return nil, ErrNotCurrentAssignee
		}
		order.AssignedTo = nil
		order.Status = model.OrderStatusConfirmed
		return map[string]interface{}{"released_by": releaser.String()}, nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_assigned", order)
	return order, nil
}

// Assign lets a manager set or move the single assignee on an assignable
// order without changing status.
func (s *orderService) Assign(ctx context.Context, actorID string, id string, employeeID string) (*model.Order, error) {
	assignee, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee id: %w", err)
	}
	if _, err := s.employeeRepo.GetByID(ctx, assignee); err != nil {
		return nil, errors.New("employee not found")
	}

	order, err := s.mutate(ctx, actorID, id, model.ActionAssignOrder, func(order *model.Order) (map[string]interface{}, error) {
		if !model.OrderAssignable(order.Status) {
			return nil, ErrNotAssignable
		}
		order.AssignedTo = &assignee
		return map[string]interface{}{"assigned_to": assignee.String()}, nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_assigned", order)
	return order, nil
}
