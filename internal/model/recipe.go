package model

import (
	"time"
)

// Recipe is a dish record with timing, servings, instructions, tags and ingredients.
type Recipe struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Title             string          `gorm:"size:100;not null;index" json:"title"`
	Description       string          `gorm:"size:500;not null" json:"description"`
	Instructions      string          `gorm:"type:text;not null" json:"instructions"`
	PrepTimeMinutes   int             `gorm:"not null;index:idx_recipes_times" json:"prepTimeMinutes"`
	CookTimeMinutes   int             `gorm:"not null;index:idx_recipes_times" json:"cookTimeMinutes"`
	Servings          int             `gorm:"not null" json:"servings"`
	ImageURL          string          `gorm:"size:500;not null" json:"imageUrl"`
	CreatedAt         time.Time       `gorm:"not null;index;autoCreateTime:false" json:"createdAt"`
	UpdatedAt         *time.Time      `gorm:"autoUpdateTime:false" json:"updatedAt"`
	DifficultyLevelID uint            `gorm:"not null;index" json:"difficultyLevelId"`
	DifficultyLevel   DifficultyLevel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"difficultyLevel"`
	DietaryTags       []DietaryTag    `gorm:"many2many:recipe_dietary_tags;constraint:OnDelete:CASCADE" json:"dietaryTags"`
	Ingredients       []Ingredient    `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

// TotalTimeMinutes is derived on every read and never stored.
func (r Recipe) TotalTimeMinutes() int {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// TagNames returns the code names of the recipe's dietary tags.
func (r Recipe) TagNames() []string {
	names := make([]string, 0, len(r.DietaryTags))
	for _, tag := range r.DietaryTags {
		names = append(names, tag.Name)
	}
	return names
}

// Ingredient belongs to exactly one recipe and lives and dies with it.
type Ingredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null;index" json:"name"`
	Amount   string `gorm:"size:50;not null" json:"amount"`
	Unit     string `gorm:"size:50;not null" json:"unit"`
	RecipeID uint   `gorm:"not null;index" json:"recipeId"`
}

// DifficultyLevel is read-mostly reference data.
type DifficultyLevel struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string  `gorm:"size:50;not null" json:"displayName"`
	Description *string `json:"description,omitempty"`
}

// DietaryTag is a reusable classification label shared by many recipes.
type DietaryTag struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:50;not null;uniqueIndex" json:"name"`
	DisplayName string  `gorm:"size:50;not null" json:"displayName"`
	Description *string `json:"description,omitempty"`
}

// RecipeDietaryTag is the pure join row between recipes and tags.
type RecipeDietaryTag struct {
	RecipeID     uint `gorm:"primaryKey;autoIncrement:false"`
	DietaryTagID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (RecipeDietaryTag) TableName() string {
	return "recipe_dietary_tags"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&DifficultyLevel{},
		&DietaryTag{},
		&Recipe{},
		&Ingredient{},
		&RecipeDietaryTag{},
	}
}
