package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
	"github.com/recipeshare/catalog/backend/internal/cache"
	"github.com/recipeshare/catalog/backend/internal/database"
	"github.com/recipeshare/catalog/backend/internal/logging"
	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/repository"
	"github.com/recipeshare/catalog/backend/internal/service"
	"github.com/recipeshare/catalog/backend/internal/types"
)

// RecipeData is the seed file format. Difficulty and tags use code names.
type RecipeData struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Instructions []string         `json:"instructions"`
	PrepTime     int              `json:"prepTimeMinutes"`
	CookTime     int              `json:"cookTimeMinutes"`
	Servings     int              `json:"servings"`
	ImageURL     string           `json:"imageUrl"`
	Difficulty   string           `json:"difficulty"`
	Tags         []string         `json:"tags"`
	Ingredients  []IngredientData `json:"ingredients"`
}

type IngredientData struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

var sampleRecipes = []RecipeData{
	{
		Title:        "Classic Tomato Soup",
		Description:  "A smooth soup of roasted tomatoes and basil",
		Instructions: []string{"Roast the tomatoes and garlic", "Simmer with stock", "Blend with basil"},
		PrepTime:     10, CookTime: 35, Servings: 4,
		Difficulty:  "Beginner",
		Tags:        []string{"Vegan", "GlutenFree"},
		Ingredients: []IngredientData{{"Tomatoes", "1", "kg"}, {"Garlic", "4", "cloves"}, {"Vegetable stock", "500", "ml"}, {"Basil", "1", "bunch"}},
	},
	{
		Title:        "Herb Omelette",
		Description:  "Fluffy eggs folded around fresh herbs",
		Instructions: []string{"Whisk eggs with milk", "Cook in butter", "Fold with herbs"},
		PrepTime:     5, CookTime: 5, Servings: 1,
		Difficulty:  "Beginner",
		Tags:        []string{"Vegetarian", "GlutenFree", "LowCarb"},
		Ingredients: []IngredientData{{"Eggs", "3", "whole"}, {"Milk", "2", "tbsp"}, {"Butter", "1", "tbsp"}, {"Chives", "1", "tbsp"}},
	},
	{
		Title:        "Chicken Tikka Masala",
		Description:  "Charred chicken in a spiced tomato cream sauce",
		Instructions: []string{"Marinate chicken in yogurt and spices", "Grill until charred", "Simmer in sauce"},
		PrepTime:     30, CookTime: 40, Servings: 4,
		Difficulty:  "Intermediate",
		Tags:        []string{"HighProtein", "GlutenFree"},
		Ingredients: []IngredientData{{"Chicken thighs", "800", "g"}, {"Yogurt", "200", "g"}, {"Crushed tomatoes", "400", "g"}, {"Cream", "150", "ml"}},
	},
	{
		Title:        "Beef Wellington",
		Description:  "Beef fillet wrapped in mushroom duxelles and puff pastry",
		Instructions: []string{"Sear the fillet", "Wrap in duxelles and prosciutto", "Encase in pastry and bake"},
		PrepTime:     60, CookTime: 45, Servings: 6,
		Difficulty:  "Advanced",
		Tags:        []string{"HighProtein"},
		Ingredients: []IngredientData{{"Beef fillet", "1", "kg"}, {"Mushrooms", "500", "g"}, {"Puff pastry", "1", "sheet"}, {"Eggs", "1", "whole"}},
	},
	{
		Title:        "Chickpea Salad",
		Description:  "Crunchy chickpeas with cucumber, herbs and lemon",
		Instructions: []string{"Rinse chickpeas", "Chop vegetables", "Toss with dressing"},
		PrepTime:     15, CookTime: 0, Servings: 2,
		Difficulty:  "Beginner",
		Tags:        []string{"Vegan", "DairyFree", "NutFree"},
		Ingredients: []IngredientData{{"Chickpeas", "400", "g"}, {"Cucumber", "1", "whole"}, {"Lemon", "1", "whole"}, {"Parsley", "1", "bunch"}},
	},
	{
		Title:        "Rice Pudding",
		Description:  "Slow-cooked rice in vanilla milk",
		Instructions: []string{"Rinse rice", "Simmer in milk with vanilla", "Stir in sugar"},
		PrepTime:     5, CookTime: 50, Servings: 4,
		Difficulty:  "Beginner",
		Tags:        []string{"Vegetarian", "GlutenFree"},
		Ingredients: []IngredientData{{"Pudding rice", "100", "g"}, {"Milk", "1", "l"}, {"Sugar", "60", "g"}, {"Vanilla", "1", "pod"}},
	},
}

func main() {
	file := flag.String("file", "", "JSON file with recipes to seed; the built-in samples are used when empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	recipes := sampleRecipes
	if *file != "" {
		if recipes, err = loadRecipes(*file); err != nil {
			logger.Fatal("failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	ctx := context.Background()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedReferenceData(ctx, db, logger); err != nil {
		logger.Fatal("failed to seed reference data", zap.Error(err))
	}

	// Seeding through the service keeps a shared cache consistent
	var rdb redis.UniversalClient
	if cfg.CacheBackend == config.CacheBackendRedis {
		client, err := database.NewRedisClient(cfg, logger)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		rdb = client
	}
	store, err := cache.New(cfg, rdb, nil, logger)
	if err != nil {
		logger.Fatal("failed to create cache", zap.Error(err))
	}

	repo := repository.NewRecipeRepository(db)
	recipeService := service.NewRecipeService(repo, store, logger, service.WithCacheTTL(cfg.CacheTTL))

	refs, err := loadReferences(ctx, repo)
	if err != nil {
		logger.Fatal("failed to load reference data", zap.Error(err))
	}

	created := 0
	for _, data := range recipes {
		exists, err := titleExists(ctx, recipeService, data.Title)
		if err != nil {
			logger.Fatal("failed to look up recipe", zap.String("title", data.Title), zap.Error(err))
		}
		if exists {
			logger.Info("recipe already present, skipping", zap.String("title", data.Title))
			continue
		}

		input, err := refs.toInput(data)
		if err != nil {
			logger.Warn("skipping recipe", zap.String("title", data.Title), zap.Error(err))
			continue
		}
		recipe, err := recipeService.CreateRecipe(ctx, input)
		if err != nil {
			logger.Warn("failed to save recipe", zap.String("title", data.Title), zap.Error(err))
			continue
		}
		created++
		logger.Info("created recipe", zap.Uint("id", recipe.ID), zap.String("title", recipe.Title))
	}

	logger.Info("seeding finished", zap.Int("created", created), zap.Int("total", len(recipes)))
}

func loadRecipes(path string) ([]RecipeData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recipes []RecipeData
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	return recipes, nil
}

type references struct {
	tags         map[string]uint
	difficulties map[string]uint
}

func loadReferences(ctx context.Context, repo *repository.RecipeRepository) (*references, error) {
	tags, err := repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	levels, err := repo.ListDifficultyLevels(ctx)
	if err != nil {
		return nil, err
	}

	refs := &references{tags: map[string]uint{}, difficulties: map[string]uint{}}
	for _, tag := range tags {
		refs.tags[tag.Name] = tag.ID
	}
	for _, level := range levels {
		refs.difficulties[level.Name] = level.ID
	}
	return refs, nil
}

func (r *references) toInput(data RecipeData) (*types.RecipeInput, error) {
	levelID, ok := r.difficulties[data.Difficulty]
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q", data.Difficulty)
	}

	input := &types.RecipeInput{
		Title:             data.Title,
		Description:       data.Description,
		Instructions:      numberSteps(data.Instructions),
		PrepTimeMinutes:   data.PrepTime,
		CookTimeMinutes:   data.CookTime,
		Servings:          data.Servings,
		ImageURL:          data.ImageURL,
		DifficultyLevelID: levelID,
	}
	for _, name := range data.Tags {
		id, ok := r.tags[name]
		if !ok {
			return nil, fmt.Errorf("unknown dietary tag %q", name)
		}
		input.DietaryTagIDs = append(input.DietaryTagIDs, id)
	}
	for _, ing := range data.Ingredients {
		input.Ingredients = append(input.Ingredients, types.IngredientInput{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
	}
	return input, nil
}

func numberSteps(steps []string) string {
	lines := make([]string, 0, len(steps))
	for i, step := range steps {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, step))
	}
	return strings.Join(lines, "\n")
}

func titleExists(ctx context.Context, svc service.IRecipeService, title string) (bool, error) {
	page, err := svc.ListRecipes(ctx, query.Criteria{
		PageNumber: 1,
		PageSize:   query.MaxPageSize,
		Search:     query.Some(title),
	})
	if err != nil {
		return false, err
	}
	for _, item := range page.Items {
		if strings.EqualFold(item.Title, title) {
			return true, nil
		}
	}
	return false, nil
}
