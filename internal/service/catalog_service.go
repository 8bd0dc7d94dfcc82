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

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	Category    string          `json:"category"`
	Active      *bool           `json:"active"`
}

type RecipeIngredientRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Unit     string          `json:"unit"`
}

type CreateRecipeRequest struct {
	ProductID    string                    `json:"product_id" binding:"required"`
	Name         string                    `json:"name" binding:"required"`
	YieldQty     int                       `json:"yield_qty"`
	Instructions string                    `json:"instructions"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

// ScaledIngredient is one recipe line multiplied out for a batch count.
type ScaledIngredient struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// CatalogService manages products and their recipes.
type CatalogService interface {
	CreateProduct(ctx context.Context, actorID string, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, actorID string, id string, req CreateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, actorID string, id string) error
	ListProducts(ctx context.Context, activeOnly bool, page, limit int) ([]model.Product, int64, error)

	CreateRecipe(ctx context.Context, actorID string, req CreateRecipeRequest) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, actorID string, id string, req CreateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, actorID string, id string) error
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	ScaleRecipe(ctx context.Context, id string, batches int) ([]ScaledIngredient, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	recipeRepo  repository.RecipeRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		recipeRepo:  recipeRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

func parseActor(actorID string) *uuid.UUID {
	if parsed, err := uuid.Parse(actorID); err == nil {
		return &parsed
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, actorID string, req CreateProductRequest) (*model.Product, error) {
	if req.UnitPrice.IsNegative() {
		return nil, errors.New("unit price cannot be negative")
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Category:    req.Category,
		Active:      true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionCreateProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, actorID string, id string, req CreateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.UnitPrice = req.UnitPrice
	product.Category = req.Category
	if req.Active != nil {
		product.Active = *req.Active
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionUpdateProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, actorID string, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, productID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionDeleteProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    `{"deleted": true}`,
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

func (s *catalogService) ListProducts(ctx context.Context, activeOnly bool, page, limit int) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, activeOnly, page, limit)
}

func (s *catalogService) buildRecipe(ctx context.Context, req CreateRecipeRequest) (*model.Recipe, []model.RecipeIngredient, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid product id: %w", err)
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, nil, errors.New("product not found")
	}

	recipe := &model.Recipe{
		ProductID:    productID,
		Name:         req.Name,
		YieldQty:     req.YieldQty,
		Instructions: req.Instructions,
	}
	if recipe.YieldQty <= 0 {
		recipe.YieldQty = 1
	}

	ingredients := make([]model.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Quantity.IsNegative() || ing.Quantity.IsZero() {
			return nil, nil, fmt.Errorf("ingredient %s quantity must be positive", ing.Name)
		}
		ingredients = append(ingredients, model.RecipeIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	return recipe, ingredients, nil
}

func (s *catalogService) CreateRecipe(ctx context.Context, actorID string, req CreateRecipeRequest) (*model.Recipe, error) {
	recipe, ingredients, err := s.buildRecipe(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recipeRepo.Create(txCtx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if err := s.recipeRepo.CreateIngredients(txCtx, ingredients); err != nil {
			return fmt.Errorf("failed to create ingredients: %w", err)
		}
		recipe.Ingredients = ingredients

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionCreateRecipe,
			EntityID:   recipe.ID.String(),
			EntityName: recipe.Name,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *catalogService) UpdateRecipe(ctx context.Context, actorID string, id string, req CreateRecipeRequest) (*model.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe id: %w", err)
	}
	existing, err := s.recipeRepo.FindByIDWithIngredients(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("recipe not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updated, ingredients, err := s.buildRecipe(ctx, req)
	if err != nil {
		return nil, err
	}

	existing.ProductID = updated.ProductID
	existing.Name = updated.Name
	existing.YieldQty = updated.YieldQty
	existing.Instructions = updated.Instructions

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recipeRepo.Update(txCtx, existing); err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		// Ingredient lines are replaced wholesale
		if err := s.recipeRepo.DeleteIngredients(txCtx, existing.ID); err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
		for i := range ingredients {
			ingredients[i].RecipeID = existing.ID
		}
		if err := s.recipeRepo.CreateIngredients(txCtx, ingredients); err != nil {
			return fmt.Errorf("failed to create ingredients: %w", err)
		}
		existing.Ingredients = ingredients

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionUpdateRecipe,
			EntityID:   existing.ID.String(),
			EntityName: existing.Name,
			Details:    string(details),
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteRecipe(ctx context.Context, actorID string, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid recipe id: %w", err)
	}
	recipe, err := s.recipeRepo.FindByIDWithIngredients(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("recipe not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.recipeRepo.DeleteIngredients(txCtx, recipeID); err != nil {
			return fmt.Errorf("failed to delete ingredients: %w", err)
		}
		if err := s.recipeRepo.Delete(txCtx, recipeID); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		audit := &model.AuditLog{
			EmployeeID: parseActor(actorID),
			Action:     model.ActionDeleteRecipe,
			EntityID:   recipe.ID.String(),
			EntityName: recipe.Name,
			Details:    `{"deleted": true}`,
		}
		if err := s.auditRepo.Log(txCtx, audit); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
}

func (s *catalogService) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	return s.recipeRepo.List(ctx)
}

// ScaleRecipe multiplies each ingredient quantity linearly by batch count.
func (s *catalogService) ScaleRecipe(ctx context.Context, id string, batches int) ([]ScaledIngredient, error) {
	if batches <= 0 {
		return nil, errors.New("batches must be positive")
	}
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe id: %w", err)
	}
	recipe, err := s.recipeRepo.FindByIDWithIngredients(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("recipe not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	factor := decimal.NewFromInt(int64(batches))
	scaled := make([]ScaledIngredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		scaled = append(scaled, ScaledIngredient{
			Name:     ing.Name,
			Quantity: ing.Quantity.Mul(factor),
			Unit:     ing.Unit,
		})
	}
	return scaled, nil
}
