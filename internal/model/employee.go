package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role constants. Manager and CEO share the management dashboard; the CFO
// alone controls the ledger approval gate.
const (
	RoleBrewer  = "brewer"
	RoleManager = "manager"
	RoleCEO     = "ceo"
	RoleCFO     = "cfo"
)

// AllRoles lists every role accepted by authenticated endpoints.
var AllRoles = []string{RoleBrewer, RoleManager, RoleCEO, RoleCFO}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Employee represents a brewery staff account
type Employee struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Username    string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	DisplayName string          `gorm:"type:varchar(255);not null" json:"display_name"`
	Discord     string          `gorm:"type:varchar(255)" json:"discord"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string          `gorm:"type:varchar(255);not null" json:"-"` // Omit password hash from JSON
	Role        string          `gorm:"type:varchar(50);not null" json:"role"`
	HourlyWage  decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"hourly_wage"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"` // GORM soft delete
}

// RefreshToken stores long-lived tokens allowing employees to request new access tokens
type RefreshToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Paystub records a wage payment issued to an employee for a work period
type Paystub struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee    *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	PeriodStart string          `gorm:"type:varchar(10);not null" json:"period_start"` // yyyy-mm-dd
	PeriodEnd   string          `gorm:"type:varchar(10);not null" json:"period_end"`
	Hours       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hours"`
	GrossPay    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_pay"`
	Notes       string          `gorm:"type:text" json:"notes"`
	IssuedBy    *uuid.UUID      `gorm:"type:uuid" json:"issued_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
