package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipeshare/catalog/backend/internal/model"
	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/testhelpers"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupRepository(t *testing.T) (*RecipeRepository, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupSQLiteDB(t)
	return NewRecipeRepository(db), db
}

func titles(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestQueryRecipesPagination(t *testing.T) {
	repo, db := setupRepository(t)
	testhelpers.InsertRecipes(t, db, 21)
	ctx := context.Background()

	first, total, err := repo.QueryRecipes(ctx, query.Criteria{PageNumber: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Len(t, first, 20)
	assert.Equal(t, "Recipe 21", first[0].Title)

	second, total, err := repo.QueryRecipes(ctx, query.Criteria{PageNumber: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, second, 1)
	assert.Equal(t, "Recipe 01", second[0].Title)

	beyond, total, err := repo.QueryRecipes(ctx, query.Criteria{PageNumber: 5, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Empty(t, beyond)
}

func TestQueryRecipesOrderingTiebreak(t *testing.T) {
	repo, db := setupRepository(t)

	older := testhelpers.InsertRecipe(t, db, testhelpers.RecipeFixture{Title: "Older", CreatedAt: base.Add(-time.Hour)})
	firstTwin := testhelpers.InsertRecipe(t, db, testhelpers.RecipeFixture{Title: "Twin A", CreatedAt: base})
	secondTwin := testhelpers.InsertRecipe(t, db, testhelpers.RecipeFixture{Title: "Twin B", CreatedAt: base})

	recipes, _, err := repo.QueryRecipes(context.Background(), query.Criteria{})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, []uint{secondTwin, firstTwin, older}, []uint{recipes[0].ID, recipes[1].ID, recipes[2].ID})
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	fixtures := []testhelpers.RecipeFixture{
		{Title: "Tomato Soup", Description: "Warm and simple", PrepTime: 10, CookTime: 15, Difficulty: "Beginner", Tags: []string{"Vegetarian", "Vegan"}, Ingredients: []string{"Tomato", "Onion"}},
		{Title: "Beef Stew", Description: "Slow cooked comfort", PrepTime: 30, CookTime: 120, Difficulty: "Intermediate", Tags: []string{"HighProtein"}, Ingredients: []string{"Beef", "Carrot"}},
		{Title: "Omelette", Description: "Fluffy eggs with 100% butter", PrepTime: 5, CookTime: 5, Difficulty: "Beginner", Tags: []string{"Vegetarian", "GlutenFree"}, Ingredients: []string{"Eggs", "Whole Milk", "Butter"}},
		{Title: "Beef Wellington", Description: "A showpiece", PrepTime: 60, CookTime: 45, Difficulty: "Advanced", Tags: []string{"HighProtein"}, Ingredients: []string{"Beef", "Puff pastry", "Egg yolk"}},
		{Title: "Rice Pudding", Description: "Creamy dessert", PrepTime: 10, CookTime: 40, Difficulty: "Beginner", Tags: []string{"Vegetarian", "GlutenFree"}, Ingredients: []string{"Rice", "Milk", "Sugar"}},
	}
	for i, f := range fixtures {
		f.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		testhelpers.InsertRecipe(t, db, f)
	}
}

func TestQueryRecipesFilters(t *testing.T) {
	repo, db := setupRepository(t)
	seedCatalog(t, db)

	tests := []struct {
		name     string
		criteria query.Criteria
		want     []string
	}{
		{name: "no filters", criteria: query.Criteria{}, want: []string{"Rice Pudding", "Beef Wellington", "Omelette", "Beef Stew", "Tomato Soup"}},
		{name: "search title case-insensitive", criteria: query.Criteria{Search: query.Some("BEEF")}, want: []string{"Beef Wellington", "Beef Stew"}},
		{name: "search description", criteria: query.Criteria{Search: query.Some("comfort")}, want: []string{"Beef Stew"}},
		{name: "search is trimmed", criteria: query.Criteria{Search: query.Some("  soup  ")}, want: []string{"Tomato Soup"}},
		{name: "search escapes percent", criteria: query.Criteria{Search: query.Some("100%")}, want: []string{"Omelette"}},
		{name: "percent alone is literal", criteria: query.Criteria{Search: query.Some("%")}, want: []string{"Omelette"}},
		{name: "underscore is literal", criteria: query.Criteria{Search: query.Some("_")}, want: []string{}},
		{name: "blank search matches all", criteria: query.Criteria{Search: query.Some("   ")}, want: []string{"Rice Pudding", "Beef Wellington", "Omelette", "Beef Stew", "Tomato Soup"}},
		{name: "tag", criteria: query.Criteria{Tag: query.Some("GlutenFree")}, want: []string{"Rice Pudding", "Omelette"}},
		{name: "unknown tag", criteria: query.Criteria{Tag: query.Some("Paleo")}, want: []string{}},
		{name: "difficulty", criteria: query.Criteria{Difficulty: query.Some("Beginner")}, want: []string{"Rice Pudding", "Omelette", "Tomato Soup"}},
		{name: "max time", criteria: query.Criteria{MaxTime: query.Some(50)}, want: []string{"Rice Pudding", "Omelette", "Tomato Soup"}},
		{name: "quick", criteria: query.Criteria{QuickRecipes: true}, want: []string{"Omelette", "Tomato Soup"}},
		{name: "quick with stricter max", criteria: query.Criteria{QuickRecipes: true, MaxTime: query.Some(10)}, want: []string{"Omelette"}},
		{name: "combined", criteria: query.Criteria{Tag: query.Some("Vegetarian"), Difficulty: query.Some("Beginner"), MaxTime: query.Some(30)}, want: []string{"Omelette", "Tomato Soup"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, total, err := repo.QueryRecipes(context.Background(), tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.Equal(t, tt.want, titles(recipes))
		})
	}
}

func TestQueryRecipesFilterMonotonicity(t *testing.T) {
	repo, db := setupRepository(t)
	seedCatalog(t, db)
	ctx := context.Background()

	// Adding a filter can only shrink the result set
	steps := []query.Criteria{
		{},
		{Tag: query.Some("Vegetarian")},
		{Tag: query.Some("Vegetarian"), Difficulty: query.Some("Beginner")},
		{Tag: query.Some("Vegetarian"), Difficulty: query.Some("Beginner"), MaxTime: query.Some(30)},
		{Tag: query.Some("Vegetarian"), Difficulty: query.Some("Beginner"), MaxTime: query.Some(30), Search: query.Some("soup")},
	}

	var previous map[uint]bool
	for i, c := range steps {
		recipes, err := repo.FindRecipes(ctx, c)
		require.NoError(t, err)
		current := map[uint]bool{}
		for _, r := range recipes {
			current[r.ID] = true
			if previous != nil {
				assert.True(t, previous[r.ID], "step %d returned recipe %d absent from the looser step", i, r.ID)
			}
		}
		previous = current
	}
}

func TestQuickEquivalentToMaxTime(t *testing.T) {
	repo, db := setupRepository(t)
	seedCatalog(t, db)
	ctx := context.Background()

	for _, x := range []int{5, 10, 25, 30, 45, 200} {
		quick, err := repo.FindRecipes(ctx, query.Criteria{QuickRecipes: true, MaxTime: query.Some(x)})
		require.NoError(t, err)
		explicit, err := repo.FindRecipes(ctx, query.Criteria{MaxTime: query.Some(min(x, 30))})
		require.NoError(t, err)
		assert.Equal(t, titles(explicit), titles(quick), "maxTime %d", x)
	}
}

func TestFindRecipesByIngredients(t *testing.T) {
	repo, db := setupRepository(t)
	seedCatalog(t, db)
	ctx := context.Background()

	all, err := query.NewIngredientMatch([]string{"egg", "milk"}, true)
	require.NoError(t, err)
	recipes, err := repo.FindRecipesByIngredients(ctx, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette"}, titles(recipes))

	anyOf, err := query.NewIngredientMatch([]string{"EGG", "milk"}, false)
	require.NoError(t, err)
	recipes, err = repo.FindRecipesByIngredients(ctx, anyOf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice Pudding", "Beef Wellington", "Omelette"}, titles(recipes))

	_, err = repo.FindRecipesByIngredients(ctx, query.IngredientMatch{})
	assert.ErrorIs(t, err, query.ErrNoIngredients)
}

func newRecipe(t *testing.T, db *gorm.DB, title string, tags ...string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Title:             title,
		Description:       title + " description",
		Instructions:      "1. Mix\n2. Bake",
		PrepTimeMinutes:   15,
		CookTimeMinutes:   25,
		Servings:          4,
		ImageURL:          "https://example.com/cake.jpg",
		CreatedAt:         base,
		DifficultyLevelID: testhelpers.DifficultyID(t, db, "Intermediate"),
		Ingredients: []model.Ingredient{
			{Name: "Flour", Amount: "2", Unit: "cups"},
			{Name: "Sugar", Amount: "1", Unit: "cup"},
		},
	}
	for _, name := range tags {
		recipe.DietaryTags = append(recipe.DietaryTags, model.DietaryTag{ID: testhelpers.TagID(t, db, name)})
	}
	return recipe
}

func TestInsertAndGetRecipe(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	recipe := newRecipe(t, db, "Sponge Cake", "Vegetarian", "NutFree", "Vegetarian")
	require.NoError(t, repo.InsertRecipe(ctx, recipe))
	require.NotZero(t, recipe.ID)

	got, err := repo.GetRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sponge Cake", got.Title)
	assert.Equal(t, 40, got.TotalTimeMinutes())
	assert.Equal(t, "Intermediate", got.DifficultyLevel.Name)
	assert.Equal(t, []string{"NutFree", "Vegetarian"}, got.TagNames())
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "Flour", got.Ingredients[0].Name)
	assert.Equal(t, "cups", got.Ingredients[0].Unit)
	assert.True(t, base.Equal(got.CreatedAt))
	assert.Nil(t, got.UpdatedAt)

	missing, err := repo.GetRecipeByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReplaceRecipe(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	recipe := newRecipe(t, db, "Sponge Cake", "Vegetarian", "NutFree")
	require.NoError(t, repo.InsertRecipe(ctx, recipe))

	updatedAt := base.Add(time.Hour)
	replacement := newRecipe(t, db, "Vegan Sponge", "Vegan")
	replacement.ID = recipe.ID
	replacement.PrepTimeMinutes = 0
	replacement.UpdatedAt = &updatedAt
	replacement.CreatedAt = base.Add(48 * time.Hour)
	replacement.Ingredients = []model.Ingredient{{Name: "Oat milk", Amount: "250", Unit: "ml"}}

	found, err := repo.ReplaceRecipe(ctx, replacement)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.GetRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Vegan Sponge", got.Title)
	assert.Equal(t, 0, got.PrepTimeMinutes)
	assert.Equal(t, []string{"Vegan"}, got.TagNames())
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Oat milk", got.Ingredients[0].Name)
	assert.True(t, base.Equal(got.CreatedAt), "createdAt must survive a replace")
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, updatedAt.Equal(*got.UpdatedAt))

	// Replaced tag links must not linger in tag filters
	stale, err := repo.FindRecipes(ctx, query.Criteria{Tag: query.Some("Vegetarian")})
	require.NoError(t, err)
	assert.Empty(t, stale)

	var links int64
	require.NoError(t, db.Model(&model.RecipeDietaryTag{}).Where("recipe_id = ?", recipe.ID).Count(&links).Error)
	assert.Equal(t, int64(1), links)

	var ingredients int64
	require.NoError(t, db.Model(&model.Ingredient{}).Where("recipe_id = ?", recipe.ID).Count(&ingredients).Error)
	assert.Equal(t, int64(1), ingredients)

	missing := newRecipe(t, db, "Ghost")
	missing.ID = 9999
	found, err = repo.ReplaceRecipe(ctx, missing)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteRecipeByID(t *testing.T) {
	repo, db := setupRepository(t)
	ctx := context.Background()

	recipe := newRecipe(t, db, "Sponge Cake", "Vegetarian")
	require.NoError(t, repo.InsertRecipe(ctx, recipe))
	keep := newRecipe(t, db, "Shortbread", "Vegetarian")
	require.NoError(t, repo.InsertRecipe(ctx, keep))

	deleted, err := repo.DeleteRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, table := range []interface{}{&model.Ingredient{}, &model.RecipeDietaryTag{}} {
		var n int64
		require.NoError(t, db.Model(table).Where("recipe_id = ?", recipe.ID).Count(&n).Error)
		assert.Zero(t, n, fmt.Sprintf("%T rows left behind", table))
	}

	remaining, err := repo.FindRecipes(ctx, query.Criteria{Tag: query.Some("Vegetarian")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shortbread"}, titles(remaining))

	deleted, err = repo.DeleteRecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListReferenceData(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 7)
	assert.Equal(t, "DairyFree", tags[0].Name)
	assert.Equal(t, "Vegetarian", tags[len(tags)-1].Name)

	levels, err := repo.ListDifficultyLevels(ctx)
	require.NoError(t, err)
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"Advanced", "Beginner", "Intermediate"}, names)

	assert.NoError(t, repo.Ping(ctx))
}

func TestQueryRecipesHonoursCancelledContext(t *testing.T) {
	repo, db := setupRepository(t)
	testhelpers.InsertRecipes(t, db, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.QueryRecipes(ctx, query.Criteria{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
