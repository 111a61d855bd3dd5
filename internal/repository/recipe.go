// Package repository holds the gorm-backed persistence for the recipe catalog.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipeshare/catalog/backend/internal/database"
	"github.com/recipeshare/catalog/backend/internal/model"
	"github.com/recipeshare/catalog/backend/internal/query"
)

// RecipeRepository reads and writes recipes through gorm. It works against
// both PostgreSQL and SQLite, so every predicate sticks to portable SQL.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository instance
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// QueryRecipes returns one page of matching recipes plus the total number of
// matches before pagination.
func (r *RecipeRepository) QueryRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, int64, error) {
	criteria = criteria.Normalize()

	var total int64
	if err := r.filtered(ctx, criteria).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []model.Recipe
	err := r.filtered(ctx, criteria).
		Scopes(newestFirst, withDetails).
		Offset(criteria.Offset()).
		Limit(criteria.PageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query recipes: %w", err)
	}
	return recipes, total, nil
}

// FindRecipes returns every recipe matching the criteria filters, ignoring pagination.
func (r *RecipeRepository) FindRecipes(ctx context.Context, criteria query.Criteria) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.filtered(ctx, criteria.Normalize()).
		Scopes(newestFirst, withDetails).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipesByIngredients matches ingredient names by case-insensitive substring.
func (r *RecipeRepository) FindRecipesByIngredients(ctx context.Context, match query.IngredientMatch) ([]model.Recipe, error) {
	if len(match.Terms) == 0 {
		return nil, query.ErrNoIngredients
	}

	exprs := make([]string, 0, len(match.Terms))
	args := make([]interface{}, 0, len(match.Terms))
	for _, term := range match.Terms {
		exprs = append(exprs, `EXISTS (SELECT 1 FROM ingredients i WHERE i.recipe_id = recipes.id AND LOWER(i.name) LIKE ? ESCAPE '\')`)
		args = append(args, containsPattern(term))
	}
	joiner := " OR "
	if match.MatchAll {
		joiner = " AND "
	}

	var recipes []model.Recipe
	err := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("("+strings.Join(exprs, joiner)+")", args...).
		Scopes(newestFirst, withDetails).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recipes by ingredients: %w", err)
	}
	return recipes, nil
}

// GetRecipeByID loads a recipe with its tags, ingredients and difficulty level.
// A missing recipe yields nil without an error.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, id uint) (*model.Recipe, error) {
	recipe, err := loadRecipe(r.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return recipe, nil
}

// InsertRecipe stores a new recipe with its ingredients and tag links in one
// transaction, then reloads it so the caller sees the stored shape.
func (r *RecipeRepository) InsertRecipe(ctx context.Context, recipe *model.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := writeChildren(tx, recipe); err != nil {
			return err
		}
		stored, err := loadRecipe(tx, recipe.ID)
		if err != nil {
			return err
		}
		*recipe = *stored
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// ReplaceRecipe overwrites every editable field of an existing recipe and
// swaps its ingredients and tag links for the given ones. CreatedAt is kept.
// It reports false when no recipe has the given ID.
func (r *RecipeRepository) ReplaceRecipe(ctx context.Context, recipe *model.Recipe) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"title":               recipe.Title,
			"description":         recipe.Description,
			"instructions":        recipe.Instructions,
			"prep_time_minutes":   recipe.PrepTimeMinutes,
			"cook_time_minutes":   recipe.CookTimeMinutes,
			"servings":            recipe.Servings,
			"image_url":           recipe.ImageURL,
			"difficulty_level_id": recipe.DifficultyLevelID,
			"updated_at":          recipe.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		found = true

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeDietaryTag{}).Error; err != nil {
			return err
		}
		if err := writeChildren(tx, recipe); err != nil {
			return err
		}

		stored, err := loadRecipe(tx, recipe.ID)
		if err != nil {
			return err
		}
		*recipe = *stored
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to replace recipe %d: %w", recipe.ID, err)
	}
	return found, nil
}

// DeleteRecipeByID removes a recipe, its ingredients and its tag links.
// It reports false when no recipe has the given ID.
func (r *RecipeRepository) DeleteRecipeByID(ctx context.Context, id uint) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeDietaryTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}
	return found, nil
}

// ListTags returns every dietary tag ordered by code name.
func (r *RecipeRepository) ListTags(ctx context.Context) ([]model.DietaryTag, error) {
	var tags []model.DietaryTag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list dietary tags: %w", err)
	}
	return tags, nil
}

// ListDifficultyLevels returns every difficulty level ordered by code name.
func (r *RecipeRepository) ListDifficultyLevels(ctx context.Context) ([]model.DifficultyLevel, error) {
	var levels []model.DifficultyLevel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to list difficulty levels: %w", err)
	}
	return levels, nil
}

// Ping checks that the database answers.
func (r *RecipeRepository) Ping(ctx context.Context) error {
	return database.HealthCheck(ctx, r.db)
}

func (r *RecipeRepository) filtered(ctx context.Context, criteria query.Criteria) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Scopes(
			matchSearch(criteria.Search),
			withTag(criteria.Tag),
			withDifficulty(criteria.Difficulty),
			withinTime(criteria.EffectiveMaxTime()),
		)
}

func matchSearch(term query.Optional[string]) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		value, ok := term.Get()
		if !ok {
			return db
		}
		pattern := containsPattern(value)
		return db.Where(`(LOWER(recipes.title) LIKE ? ESCAPE '\' OR LOWER(recipes.description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
}

func withTag(tag query.Optional[string]) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		name, ok := tag.Get()
		if !ok {
			return db
		}
		return db.Where(`EXISTS (SELECT 1 FROM recipe_dietary_tags rdt
			JOIN dietary_tags dt ON dt.id = rdt.dietary_tag_id
			WHERE rdt.recipe_id = recipes.id AND dt.name = ?)`, name)
	}
}

func withDifficulty(level query.Optional[string]) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		name, ok := level.Get()
		if !ok {
			return db
		}
		return db.Where(`EXISTS (SELECT 1 FROM difficulty_levels dl
			WHERE dl.id = recipes.difficulty_level_id AND dl.name = ?)`, name)
	}
}

func withinTime(maxMinutes query.Optional[int]) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		limit, ok := maxMinutes.Get()
		if !ok {
			return db
		}
		return db.Where("recipes.prep_time_minutes + recipes.cook_time_minutes <= ?", limit)
	}
}

// newestFirst orders by creation time, breaking ties with the later insert.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("recipes.created_at DESC").Order("recipes.id DESC")
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DifficultyLevel").
		Preload("DietaryTags", func(db *gorm.DB) *gorm.DB { return db.Order("dietary_tags.name ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id ASC") })
}

func loadRecipe(db *gorm.DB, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := db.Scopes(withDetails).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// writeChildren inserts the ingredient rows and tag links of a stored recipe.
func writeChildren(tx *gorm.DB, recipe *model.Recipe) error {
	if len(recipe.Ingredients) > 0 {
		ingredients := make([]model.Ingredient, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			ingredients[i] = model.Ingredient{
				Name:     ing.Name,
				Amount:   ing.Amount,
				Unit:     ing.Unit,
				RecipeID: recipe.ID,
			}
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
	}

	if len(recipe.DietaryTags) > 0 {
		links := make([]model.RecipeDietaryTag, 0, len(recipe.DietaryTags))
		seen := make(map[uint]struct{}, len(recipe.DietaryTags))
		for _, tag := range recipe.DietaryTags {
			if _, dup := seen[tag.ID]; dup {
				continue
			}
			seen[tag.ID] = struct{}{}
			links = append(links, model.RecipeDietaryTag{RecipeID: recipe.ID, DietaryTagID: tag.ID})
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

// containsPattern builds a LIKE pattern for a lower-cased substring match,
// escaping the wildcard characters of the term itself.
func containsPattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}
