package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable brew offered on the public order form
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Category    string          `gorm:"type:varchar(100)" json:"category"` // ale, lager, seasonal...
	Active      bool            `gorm:"default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Recipe describes how one batch of a product is brewed
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	ProductID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      *Product           `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Name         string             `gorm:"type:varchar(255);not null" json:"name"`
	YieldQty     int                `gorm:"type:int;not null;default:1" json:"yield_qty"` // units per batch
	Instructions string             `gorm:"type:text" json:"instructions"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RecipeIngredient is one ingredient line of a recipe. Quantities scale
// linearly with batch count.
type RecipeIngredient struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	RecipeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"` // per batch
	Unit     string          `gorm:"type:varchar(50)" json:"unit"`
}
