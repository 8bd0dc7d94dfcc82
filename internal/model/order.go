package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants. Statuses are stored as display strings.
const (
	OrderStatusSubmitted       = "Submitted"
	OrderStatusAwaitingPayment = "Awaiting Payment"
	OrderStatusConfirmed       = "Confirmed"
	OrderStatusInProduction    = "In Production"
	OrderStatusReady           = "Ready"
	OrderStatusDelivered       = "Delivered"
	OrderStatusCancelled       = "Cancelled"
)

// orderFlow maps each status to its single legal successor. Terminal
// statuses have no entry.
var orderFlow = map[string]string{
	OrderStatusSubmitted:       OrderStatusAwaitingPayment,
	OrderStatusAwaitingPayment: OrderStatusConfirmed,
	OrderStatusConfirmed:       OrderStatusInProduction,
	OrderStatusInProduction:    OrderStatusReady,
	OrderStatusReady:           OrderStatusDelivered,
}

// NextOrderStatus returns the successor of status and whether a transition
// is defined. Delivered and Cancelled return ("", false).
func NextOrderStatus(status string) (string, bool) {
	next, ok := orderFlow[status]
	return next, ok
}

// OrderStatusTerminal reports whether no further transition (including
// cancellation) is allowed from status.
func OrderStatusTerminal(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

// OrderAssignable reports whether an order in status may hold an assignee.
func OrderAssignable(status string) bool {
	return status == OrderStatusConfirmed || status == OrderStatusInProduction
}

// Order represents a customer order moving through the production pipeline.
// Orders are never deleted: they end Delivered or Cancelled.
type Order struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	CustomerName     string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerDiscord  string          `gorm:"type:varchar(255)" json:"customer_discord"`
	DeliveryMethod   string          `gorm:"type:varchar(100)" json:"delivery_method"`
	DeliveryLocation string          `gorm:"type:varchar(255)" json:"delivery_location"`
	Status           string          `gorm:"type:varchar(50);not null;default:'Submitted';index" json:"status"`
	AssignedTo       *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_to"`
	Assignee         *Employee       `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	PaymentConfirmed bool            `gorm:"default:false" json:"payment_confirmed"`
	Notes            string          `gorm:"type:text" json:"notes"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"` // fixed at creation
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	StatusUpdatedAt  time.Time       `json:"status_updated_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderItem represents a line item within an Order. Name and price are
// snapshots taken at order time, not live product references.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
