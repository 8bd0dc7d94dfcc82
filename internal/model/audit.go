package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateOrder        = "CREATE_ORDER"
	ActionAdvanceOrder       = "ADVANCE_ORDER"
	ActionCancelOrder        = "CANCEL_ORDER"
	ActionClaimOrder         = "CLAIM_ORDER"
	ActionReleaseOrder       = "RELEASE_ORDER"
	ActionAssignOrder        = "ASSIGN_ORDER"
	ActionCreateTransaction  = "CREATE_TRANSACTION"
	ActionApproveTransaction = "APPROVE_TRANSACTION"
	ActionRejectTransaction  = "REJECT_TRANSACTION"
	ActionCreateCategory     = "CREATE_CATEGORY"
	ActionDeleteCategory     = "DELETE_CATEGORY"
	ActionCreateLoan         = "CREATE_LOAN"
	ActionUpdateLoan         = "UPDATE_LOAN"
	ActionDeleteLoan         = "DELETE_LOAN"
	ActionCreateProduct      = "CREATE_PRODUCT"
	ActionUpdateProduct      = "UPDATE_PRODUCT"
	ActionDeleteProduct      = "DELETE_PRODUCT"
	ActionCreateRecipe       = "CREATE_RECIPE"
	ActionUpdateRecipe       = "UPDATE_RECIPE"
	ActionDeleteRecipe       = "DELETE_RECIPE"
	ActionAdjustInventory    = "ADJUST_INVENTORY"
	ActionIssuePaystub       = "ISSUE_PAYSTUB"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id"` // Nullable for public order form
	Employee   *Employee  `gorm:"foreignKey:EmployeeID" json:"employee"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
