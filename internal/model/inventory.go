package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a raw material or supply on hand. Valuation is
// quantity * unit cost, summed across items.
type InventoryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0" json:"quantity"`
	Unit         string          `gorm:"type:varchar(50)" json:"unit"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_cost"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(12,3);default:0" json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Value returns quantity * unit cost for this item.
func (i InventoryItem) Value() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}
