package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUID primary keys default to gen_random_uuid() in Postgres; these hooks
// cover drivers without that function (sqlite in tests).

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (e *Employee) BeforeCreate(*gorm.DB) error       { ensureID(&e.ID); return nil }
func (r *RefreshToken) BeforeCreate(*gorm.DB) error   { ensureID(&r.ID); return nil }
func (p *Paystub) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (o *Order) BeforeCreate(*gorm.DB) error          { ensureID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(*gorm.DB) error      { ensureID(&i.ID); return nil }
func (t *Transaction) BeforeCreate(*gorm.DB) error    { ensureID(&t.ID); return nil }
func (l *Loan) BeforeCreate(*gorm.DB) error           { ensureID(&l.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (r *Recipe) BeforeCreate(*gorm.DB) error         { ensureID(&r.ID); return nil }
func (i *RecipeIngredient) BeforeCreate(*gorm.DB) error { ensureID(&i.ID); return nil }
func (i *InventoryItem) BeforeCreate(*gorm.DB) error  { ensureID(&i.ID); return nil }
func (a *AuditLog) BeforeCreate(*gorm.DB) error       { ensureID(&a.ID); return nil }
