package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/recipeshare/catalog/backend/internal/model"
)

// RecipeFixture describes a recipe to insert directly into the database.
type RecipeFixture struct {
	Title       string
	Description string
	PrepTime    int
	CookTime    int
	Difficulty  string
	Tags        []string
	Ingredients []string
	CreatedAt   time.Time
}

// TagID looks up a seeded dietary tag by code name.
func TagID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var tag model.DietaryTag
	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		t.Fatalf("dietary tag %s not found: %v", name, err)
	}
	return tag.ID
}

// DifficultyID looks up a seeded difficulty level by code name.
func DifficultyID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var level model.DifficultyLevel
	if err := db.Where("name = ?", name).First(&level).Error; err != nil {
		t.Fatalf("difficulty level %s not found: %v", name, err)
	}
	return level.ID
}

// InsertRecipe writes a fixture straight through gorm and returns its id.
func InsertRecipe(t *testing.T, db *gorm.DB, f RecipeFixture) uint {
	t.Helper()

	if f.Title == "" {
		f.Title = "Recipe"
	}
	if f.Description == "" {
		f.Description = f.Title + " description"
	}
	if f.Difficulty == "" {
		f.Difficulty = "Beginner"
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	recipe := model.Recipe{
		Title:             f.Title,
		Description:       f.Description,
		Instructions:      "1. Cook it",
		PrepTimeMinutes:   f.PrepTime,
		CookTimeMinutes:   f.CookTime,
		Servings:          2,
		ImageURL:          "https://example.com/" + f.Title + ".jpg",
		CreatedAt:         f.CreatedAt,
		DifficultyLevelID: DifficultyID(t, db, f.Difficulty),
	}
	if err := db.Omit("DietaryTags", "Ingredients", "DifficultyLevel").Create(&recipe).Error; err != nil {
		t.Fatalf("failed to insert recipe %s: %v", f.Title, err)
	}

	for _, name := range f.Tags {
		row := model.RecipeDietaryTag{RecipeID: recipe.ID, DietaryTagID: TagID(t, db, name)}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to tag recipe %s: %v", f.Title, err)
		}
	}
	for _, name := range f.Ingredients {
		row := model.Ingredient{Name: name, Amount: "1", Unit: "piece", RecipeID: recipe.ID}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to add ingredient to recipe %s: %v", f.Title, err)
		}
	}
	return recipe.ID
}

// InsertRecipes inserts n recipes one minute apart, oldest first.
func InsertRecipes(t *testing.T, db *gorm.DB, n int) []uint {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, InsertRecipe(t, db, RecipeFixture{
			Title:     fmt.Sprintf("Recipe %02d", i+1),
			PrepTime:  10,
			CookTime:  10,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return ids
}
