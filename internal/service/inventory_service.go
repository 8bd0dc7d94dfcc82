package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpsertInventoryItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

type AdjustInventoryRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"` // positive restock, negative consumption
	Reason string          `json:"reason"`
}

// InventoryValuation is the stock listing plus its total value.
type InventoryValuation struct {
	Items      []model.InventoryItem `json:"items"`
	TotalValue decimal.Decimal       `json:"total_value"`
}

type InventoryService interface {
	Create(ctx context.Context, actorID string, req UpsertInventoryItemRequest) (*model.InventoryItem, error)
	Update(ctx context.Context, actorID string, id string, req UpsertInventoryItemRequest) (*model.InventoryItem, error)
	Adjust(ctx context.Context, actorID string, id string, req AdjustInventoryRequest) (*model.InventoryItem, error)
	Delete(ctx context.Context, actorID string, id string) error
	Valuation(ctx context.Context) (*InventoryValuation, error)
	LowStock(ctx context.Context) ([]model.InventoryItem, error)
}

type inventoryService struct {
	repo      repository.InventoryRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewInventoryService(
	repo repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InventoryService {
	return &inventoryService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

func (s *inventoryService) logAdjust(txCtx context.Context, actorID string, item *model.InventoryItem, details interface{}) error {
	payload, _ := json.Marshal(details)
	audit := &model.AuditLog{
		EmployeeID: parseActor(actorID),
		Action:     model.ActionAdjustInventory,
		EntityID:   item.ID.String(),
		EntityName: item.Name,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(txCtx, audit); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *inventoryService) Create(ctx context.Context, actorID string, req UpsertInventoryItemRequest) (*model.InventoryItem, error) {
	if req.Quantity.IsNegative() || req.UnitCost.IsNegative() {
		return nil, errors.New("quantity and unit cost cannot be negative")
	}

	item := &model.InventoryItem{
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		UnitCost:     req.UnitCost,
		ReorderLevel: req.ReorderLevel,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, item); err != nil {
			return fmt.Errorf("failed to create inventory item: %w", err)
		}
		return s.logAdjust(txCtx, actorID, item, req)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) Update(ctx context.Context, actorID string, id string, req UpsertInventoryItemRequest) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("inventory item not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if req.Quantity.IsNegative() || req.UnitCost.IsNegative() {
		return nil, errors.New("quantity and unit cost cannot be negative")
	}

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.UnitCost = req.UnitCost
	item.ReorderLevel = req.ReorderLevel

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to update inventory item: %w", err)
		}
		return s.logAdjust(txCtx, actorID, item, req)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Adjust applies a signed quantity delta, rejecting adjustments that would
// drive stock negative.
func (s *inventoryService) Adjust(ctx context.Context, actorID string, id string, req AdjustInventoryRequest) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}

	var item *model.InventoryItem
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		item, findErr = s.repo.FindByID(txCtx, itemID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return errors.New("inventory item not found")
			}
			return fmt.Errorf("database error: %w", findErr)
		}

		newQty := item.Quantity.Add(req.Delta)
		if newQty.IsNegative() {
			return fmt.Errorf("adjustment would leave %s at negative stock", item.Name)
		}
		item.Quantity = newQty

		if err := s.repo.Update(txCtx, item); err != nil {
			return fmt.Errorf("failed to update inventory item: %w", err)
		}
		return s.logAdjust(txCtx, actorID, item, req)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, actorID string, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("inventory item not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, itemID); err != nil {
			return fmt.Errorf("failed to delete inventory item: %w", err)
		}
		return s.logAdjust(txCtx, actorID, item, map[string]bool{"deleted": true})
	})
}

func (s *inventoryService) Valuation(ctx context.Context) (*InventoryValuation, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Value())
	}

	return &InventoryValuation{Items: items, TotalValue: total}, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]model.InventoryItem, error) {
	return s.repo.ListLowStock(ctx)
}
