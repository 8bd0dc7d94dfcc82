package repository

import (
	"context"

	"brewhouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	CreateIngredients(ctx context.Context, ingredients []model.RecipeIngredient) error
	FindByIDWithIngredients(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context) ([]model.Recipe, error)
	Update(ctx context.Context, recipe *model.Recipe) error
	DeleteIngredients(ctx context.Context, recipeID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return GetDB(ctx, r.db).Omit("Ingredients").Create(recipe).Error
}

func (r *recipeRepository) CreateIngredients(ctx context.Context, ingredients []model.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&ingredients).Error
}

func (r *recipeRepository) FindByIDWithIngredients(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := GetDB(ctx, r.db).
		Preload("Ingredients").
		Preload("Product").
		First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := GetDB(ctx, r.db).
		Preload("Ingredients").
		Preload("Product").
		Order("name asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return GetDB(ctx, r.db).Omit("Ingredients").Save(recipe).Error
}

func (r *recipeRepository) DeleteIngredients(ctx context.Context, recipeID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Recipe{}).Error
}
