package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/recipeshare/catalog/backend/internal/model"
	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, criteria query.Criteria) (*types.RecipePage, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipePage), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, input *types.RecipeInput) (*types.RecipeDetail, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ListAvailableDietaryTags mocks the ListAvailableDietaryTags method
func (m *MockRecipeService) ListAvailableDietaryTags(ctx context.Context) ([]types.DietaryTag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DietaryTag), args.Error(1)
}

// ListAvailableDifficultyLevels mocks the ListAvailableDifficultyLevels method
func (m *MockRecipeService) ListAvailableDifficultyLevels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecipeService) listItems(args mock.Arguments) ([]types.RecipeListItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeListItem), args.Error(1)
}

// GetRecipesByDietaryTag mocks the GetRecipesByDietaryTag method
func (m *MockRecipeService) GetRecipesByDietaryTag(ctx context.Context, tag string) ([]types.RecipeListItem, error) {
	return m.listItems(m.Called(ctx, tag))
}

// GetRecipesByTotalTime mocks the GetRecipesByTotalTime method
func (m *MockRecipeService) GetRecipesByTotalTime(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error) {
	return m.listItems(m.Called(ctx, maxMinutes))
}

// GetRecipesByDifficultyLevel mocks the GetRecipesByDifficultyLevel method
func (m *MockRecipeService) GetRecipesByDifficultyLevel(ctx context.Context, level string) ([]types.RecipeListItem, error) {
	return m.listItems(m.Called(ctx, level))
}

// GetQuickRecipes mocks the GetQuickRecipes method
func (m *MockRecipeService) GetQuickRecipes(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error) {
	return m.listItems(m.Called(ctx, maxMinutes))
}

// GetRecipesByIngredients mocks the GetRecipesByIngredients method
func (m *MockRecipeService) GetRecipesByIngredients(ctx context.Context, ingredients []string, matchAll bool) ([]types.RecipeListItem, error) {
	return m.listItems(m.Called(ctx, ingredients, matchAll))
}

// Ping mocks the Ping method
func (m *MockRecipeService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// CachePing mocks the CachePing method
func (m *MockRecipeService) CachePing(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockRecipeRepository is a mock implementation of the recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

// QueryRecipes mocks the QueryRecipes method
func (m *MockRecipeRepository) QueryRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, int64, error) {
	args := m.Called(ctx, criteria)
	recipes, _ := args.Get(0).([]model.Recipe)
	return recipes, args.Get(1).(int64), args.Error(2)
}

// FindRecipes mocks the FindRecipes method
func (m *MockRecipeRepository) FindRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, error) {
	args := m.Called(ctx, criteria)
	recipes, _ := args.Get(0).([]model.Recipe)
	return recipes, args.Error(1)
}

// FindRecipesByIngredients mocks the FindRecipesByIngredients method
func (m *MockRecipeRepository) FindRecipesByIngredients(ctx context.Context, match query.IngredientMatch) ([]model.Recipe, error) {
	args := m.Called(ctx, match)
	recipes, _ := args.Get(0).([]model.Recipe)
	return recipes, args.Error(1)
}

// GetRecipeByID mocks the GetRecipeByID method
func (m *MockRecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// InsertRecipe mocks the InsertRecipe method
func (m *MockRecipeRepository) InsertRecipe(ctx context.Context, recipe *model.Recipe) error {
	return m.Called(ctx, recipe).Error(0)
}

// ReplaceRecipe mocks the ReplaceRecipe method
func (m *MockRecipeRepository) ReplaceRecipe(ctx context.Context, recipe *model.Recipe) (bool, error) {
	args := m.Called(ctx, recipe)
	return args.Bool(0), args.Error(1)
}

// DeleteRecipeByID mocks the DeleteRecipeByID method
func (m *MockRecipeRepository) DeleteRecipeByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ListTags mocks the ListTags method
func (m *MockRecipeRepository) ListTags(ctx context.Context) ([]model.DietaryTag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]model.DietaryTag)
	return tags, args.Error(1)
}

// ListDifficultyLevels mocks the ListDifficultyLevels method
func (m *MockRecipeRepository) ListDifficultyLevels(ctx context.Context) ([]model.DifficultyLevel, error) {
	args := m.Called(ctx)
	levels, _ := args.Get(0).([]model.DifficultyLevel)
	return levels, args.Error(1)
}

// Ping mocks the Ping method
func (m *MockRecipeRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
