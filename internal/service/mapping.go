package service

import (
	"github.com/recipeshare/catalog/backend/internal/model"
	"github.com/recipeshare/catalog/backend/internal/types"
)

func toListItem(r *model.Recipe) types.RecipeListItem {
	return types.RecipeListItem{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		ImageURL:        r.ImageURL,
		DietaryTags:     r.TagNames(),
		DifficultyLevel: r.DifficultyLevel.Name,
	}
}

func toListItems(recipes []model.Recipe) []types.RecipeListItem {
	items := make([]types.RecipeListItem, len(recipes))
	for i := range recipes {
		items[i] = toListItem(&recipes[i])
	}
	return items
}

func toDetail(r *model.Recipe) *types.RecipeDetail {
	ingredients := make([]types.IngredientView, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = types.IngredientView{
			ID:     ing.ID,
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		}
	}
	return &types.RecipeDetail{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Instructions:     r.Instructions,
		PrepTimeMinutes:  r.PrepTimeMinutes,
		CookTimeMinutes:  r.CookTimeMinutes,
		TotalTimeMinutes: r.TotalTimeMinutes(),
		Servings:         r.Servings,
		ImageURL:         r.ImageURL,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		DietaryTags:      r.TagNames(),
		Ingredients:      ingredients,
		DifficultyLevel:  r.DifficultyLevel.Name,
	}
}

func toDietaryTags(tags []model.DietaryTag) []types.DietaryTag {
	out := make([]types.DietaryTag, len(tags))
	for i, t := range tags {
		out[i] = types.DietaryTag{
			ID:          t.ID,
			Name:        t.Name,
			DisplayName: t.DisplayName,
			Description: t.Description,
		}
	}
	return out
}

// toModel builds the entity for a validated input. Tag IDs must already be deduplicated.
func toModel(in *types.RecipeInput) *model.Recipe {
	recipe := &model.Recipe{
		Title:             in.Title,
		Description:       in.Description,
		Instructions:      in.Instructions,
		PrepTimeMinutes:   in.PrepTimeMinutes,
		CookTimeMinutes:   in.CookTimeMinutes,
		Servings:          in.Servings,
		ImageURL:          in.ImageURL,
		DifficultyLevelID: in.DifficultyLevelID,
	}
	for _, id := range in.DietaryTagIDs {
		recipe.DietaryTags = append(recipe.DietaryTags, model.DietaryTag{ID: id})
	}
	for _, ing := range in.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	return recipe
}
