package types

import (
	"time"

	"github.com/recipeshare/catalog/backend/internal/query"
)

// RecipeListItem is the summary shown in recipe listings
type RecipeListItem struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PrepTimeMinutes int      `json:"prepTimeMinutes"`
	CookTimeMinutes int      `json:"cookTimeMinutes"`
	ImageURL        string   `json:"imageUrl"`
	DietaryTags     []string `json:"dietaryTags"`
	DifficultyLevel string   `json:"difficultyLevel"`
}

// IngredientView is an ingredient line as returned to clients
type IngredientView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// RecipeDetail is the full recipe returned by single-recipe endpoints
type RecipeDetail struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Instructions     string           `json:"instructions"`
	PrepTimeMinutes  int              `json:"prepTimeMinutes"`
	CookTimeMinutes  int              `json:"cookTimeMinutes"`
	TotalTimeMinutes int              `json:"totalTimeMinutes"`
	Servings         int              `json:"servings"`
	ImageURL         string           `json:"imageUrl"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        *time.Time       `json:"updatedAt"`
	DietaryTags      []string         `json:"dietaryTags"`
	Ingredients      []IngredientView `json:"ingredients"`
	DifficultyLevel  string           `json:"difficultyLevel"`
}

// DietaryTag describes a tag clients can filter by
type DietaryTag struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description *string `json:"description,omitempty"`
}

// RecipePage is one page of a recipe listing
type RecipePage struct {
	Items      []RecipeListItem `json:"items"`
	TotalCount int64            `json:"totalCount"`
	PageNumber int              `json:"pageNumber"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// NewRecipePage builds the page envelope, deriving the page count from total and size.
func NewRecipePage(items []RecipeListItem, total int64, pageNumber, pageSize int) *RecipePage {
	if items == nil {
		items = []RecipeListItem{}
	}
	return &RecipePage{
		Items:      items,
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: query.TotalPages(total, pageSize),
	}
}

// IngredientInput is an ingredient line in a create or update request
type IngredientInput struct {
	Name   string `json:"name" validate:"required,max=100"`
	Amount string `json:"amount" validate:"required,max=50"`
	Unit   string `json:"unit" validate:"required,max=50"`
}

// RecipeInput is the request body for creating or replacing a recipe
type RecipeInput struct {
	Title             string            `json:"title" validate:"required,max=100"`
	Description       string            `json:"description" validate:"required,max=500"`
	Instructions      string            `json:"instructions" validate:"required"`
	PrepTimeMinutes   int               `json:"prepTimeMinutes" validate:"min=0"`
	CookTimeMinutes   int               `json:"cookTimeMinutes" validate:"min=0"`
	Servings          int               `json:"servings" validate:"min=1"`
	ImageURL          string            `json:"imageUrl" validate:"omitempty,url,max=500"`
	DifficultyLevelID uint              `json:"difficultyLevelId" validate:"required"`
	DietaryTagIDs     []uint            `json:"dietaryTagIds"`
	Ingredients       []IngredientInput `json:"ingredients" validate:"dive"`
}
