package database

import (
	"log"

	"brewhouse/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs auto-migration for every core model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Employee{},
		&model.RefreshToken{},
		&model.Paystub{},
		&model.Order{},
		&model.OrderItem{},
		&model.Transaction{},
		&model.Category{},
		&model.Loan{},
		&model.Product{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.InventoryItem{},
		&model.AuditLog{},
	)
}

// SeedCategories inserts the default category classification table when it
// is empty. The ledger consumes this classification, it never computes it.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.Category{
		{Name: "Sales", Type: model.CategoryTypeRevenue},
		{Name: "Merchandise", Type: model.CategoryTypeRevenue},
		{Name: model.CategoryCOGS, Type: model.CategoryTypeExpense},
		{Name: "Supplies", Type: model.CategoryTypeExpense},
		{Name: "Wages", Type: model.CategoryTypeExpense},
		{Name: "Rent", Type: model.CategoryTypeExpense},
		{Name: "Marketing", Type: model.CategoryTypeExpense},
		{Name: model.CategorySavings, Type: model.CategoryTypeAsset},
		{Name: model.CategoryEquipment, Type: model.CategoryTypeAsset},
		{Name: "Loan Proceeds", Type: model.CategoryTypeLiability},
		{Name: model.CategoryLoanRepayment, Type: model.CategoryTypeLiability},
		{Name: model.CategoryFounderCapital, Type: model.CategoryTypeEquity},
	}
	return db.Create(&defaults).Error
}
