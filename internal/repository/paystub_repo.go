package repository

import (
	"context"

	"brewhouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaystubRepository interface {
	Create(ctx context.Context, stub *model.Paystub) error
	List(ctx context.Context, page, limit int) ([]model.Paystub, int64, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Paystub, error)
}

type paystubRepository struct {
	db *gorm.DB
}

func NewPaystubRepository(db *gorm.DB) PaystubRepository {
	return &paystubRepository{db: db}
}

func (r *paystubRepository) Create(ctx context.Context, stub *model.Paystub) error {
	return GetDB(ctx, r.db).Create(stub).Error
}

func (r *paystubRepository) List(ctx context.Context, page, limit int) ([]model.Paystub, int64, error) {
	var stubs []model.Paystub
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Paystub{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Employee").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&stubs).Error; err != nil {
		return nil, 0, err
	}

	return stubs, total, nil
}

func (r *paystubRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Paystub, error) {
	var stubs []model.Paystub
	if err := GetDB(ctx, r.db).
		Where("employee_id = ?", employeeID).
		Order("period_end desc").
		Find(&stubs).Error; err != nil {
		return nil, err
	}
	return stubs, nil
}
