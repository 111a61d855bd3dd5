package service

import (
	"context"

	"github.com/recipeshare/catalog/backend/internal/model"
	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/types"
)

// IRecipeService defines the interface for recipe catalog operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, criteria query.Criteria) (*types.RecipePage, error)
	GetRecipe(ctx context.Context, id uint) (*types.RecipeDetail, error)
	CreateRecipe(ctx context.Context, input *types.RecipeInput) (*types.RecipeDetail, error)
	UpdateRecipe(ctx context.Context, id uint, input *types.RecipeInput) (*types.RecipeDetail, error)
	DeleteRecipe(ctx context.Context, id uint) (bool, error)
	ListAvailableDietaryTags(ctx context.Context) ([]types.DietaryTag, error)
	ListAvailableDifficultyLevels(ctx context.Context) ([]string, error)
	GetRecipesByDietaryTag(ctx context.Context, tag string) ([]types.RecipeListItem, error)
	GetRecipesByTotalTime(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error)
	GetRecipesByDifficultyLevel(ctx context.Context, level string) ([]types.RecipeListItem, error)
	GetQuickRecipes(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error)
	GetRecipesByIngredients(ctx context.Context, ingredients []string, matchAll bool) ([]types.RecipeListItem, error)
	Ping(ctx context.Context) error
	CachePing(ctx context.Context) error
}

// IRecipeRepository defines the persistence operations the catalog needs
type IRecipeRepository interface {
	QueryRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, int64, error)
	FindRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, error)
	FindRecipesByIngredients(ctx context.Context, match query.IngredientMatch) ([]model.Recipe, error)
	GetRecipeByID(ctx context.Context, id uint) (*model.Recipe, error)
	InsertRecipe(ctx context.Context, recipe *model.Recipe) error
	ReplaceRecipe(ctx context.Context, recipe *model.Recipe) (bool, error)
	DeleteRecipeByID(ctx context.Context, id uint) (bool, error)
	ListTags(ctx context.Context) ([]model.DietaryTag, error)
	ListDifficultyLevels(ctx context.Context) ([]model.DifficultyLevel, error)
	Ping(ctx context.Context) error
}
