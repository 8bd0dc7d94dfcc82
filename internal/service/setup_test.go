package service

import (
	"testing"

	"brewhouse/internal/model"
	"brewhouse/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func newTestLedgerService(db *gorm.DB) LedgerService {
	return NewLedgerService(
		repository.NewTransactionRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewLoanRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func newTestEmployeeService(db *gorm.DB) EmployeeService {
	return NewEmployeeService(
		repository.NewEmployeeRepository(db),
		repository.NewPaystubRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func newTestReportService(db *gorm.DB) ReportService {
	return NewReportService(
		repository.NewTransactionRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewLoanRepository(db),
		repository.NewInventoryRepository(db),
	)
}
