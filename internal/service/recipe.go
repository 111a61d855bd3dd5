package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/internal/cache"
	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/types"
)

// RecipeService orchestrates catalog reads and writes. Reads go through the
// cache first; writes validate, persist, then invalidate what they touched.
type RecipeService struct {
	repo     IRecipeRepository
	cache    cache.Store
	validate *validator.Validate
	log      *zap.Logger
	ttl      time.Duration
	now      func() time.Time
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// Option customizes a RecipeService.
type Option func(*RecipeService)

// WithCacheTTL sets how long reads stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *RecipeService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the time source used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *RecipeService) {
		s.now = now
	}
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(repo IRecipeRepository, store cache.Store, log *zap.Logger, opts ...Option) *RecipeService {
	s := &RecipeService{
		repo:     repo,
		cache:    store,
		validate: newValidator(),
		log:      log,
		ttl:      cache.DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRecipes returns one page of recipes matching the criteria
func (s *RecipeService) ListRecipes(ctx context.Context, criteria query.Criteria) (*types.RecipePage, error) {
	criteria = criteria.Normalize()
	key := cache.ListKey(criteria)

	var page types.RecipePage
	if s.cached(ctx, key, &page) {
		return &page, nil
	}

	recipes, total, err := s.repo.QueryRecipes(ctx, criteria)
	if err != nil {
		return nil, storageError("query recipes", err)
	}

	result := types.NewRecipePage(toListItems(recipes), total, criteria.PageNumber, criteria.PageSize)
	s.store(ctx, key, result)
	return result, nil
}

// GetRecipe returns a single recipe or ErrNotFound
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*types.RecipeDetail, error) {
	key := cache.DetailKey(id)

	var detail types.RecipeDetail
	if s.cached(ctx, key, &detail) {
		return &detail, nil
	}

	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, storageError("get recipe", err)
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	result := toDetail(recipe)
	s.store(ctx, key, result)
	return result, nil
}

// CreateRecipe validates and stores a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, input *types.RecipeInput) (*types.RecipeDetail, error) {
	in := prepareInput(input)
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	recipe := toModel(in)
	recipe.CreatedAt = s.now().UTC()
	if err := s.repo.InsertRecipe(ctx, recipe); err != nil {
		return nil, storageError("insert recipe", err)
	}

	s.invalidateLists(ctx)
	s.log.Info("recipe created", zap.Uint("recipe_id", recipe.ID))
	return toDetail(recipe), nil
}

// UpdateRecipe replaces every editable field of an existing recipe
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, input *types.RecipeInput) (*types.RecipeDetail, error) {
	in := prepareInput(input)
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	recipe := toModel(in)
	recipe.ID = id
	updatedAt := s.now().UTC()
	recipe.UpdatedAt = &updatedAt

	found, err := s.repo.ReplaceRecipe(ctx, recipe)
	if err != nil {
		return nil, storageError("replace recipe", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	s.invalidateRecipe(ctx, id)
	s.log.Info("recipe updated", zap.Uint("recipe_id", id))
	return toDetail(recipe), nil
}

// DeleteRecipe removes a recipe and reports whether it existed
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.DeleteRecipeByID(ctx, id)
	if err != nil {
		return false, storageError("delete recipe", err)
	}
	if deleted {
		s.invalidateRecipe(ctx, id)
		s.log.Info("recipe deleted", zap.Uint("recipe_id", id))
	}
	return deleted, nil
}

// ListAvailableDietaryTags returns every dietary tag ordered by code name
func (s *RecipeService) ListAvailableDietaryTags(ctx context.Context) ([]types.DietaryTag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, storageError("list dietary tags", err)
	}
	return toDietaryTags(tags), nil
}

// ListAvailableDifficultyLevels returns the difficulty level code names in order
func (s *RecipeService) ListAvailableDifficultyLevels(ctx context.Context) ([]string, error) {
	levels, err := s.repo.ListDifficultyLevels(ctx)
	if err != nil {
		return nil, storageError("list difficulty levels", err)
	}
	names := make([]string, len(levels))
	for i, level := range levels {
		names[i] = level.Name
	}
	return names, nil
}

// GetRecipesByDietaryTag lists every recipe carrying the tag
func (s *RecipeService) GetRecipesByDietaryTag(ctx context.Context, tag string) ([]types.RecipeListItem, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, invalid("tag", "is required")
	}
	return s.findRecipes(ctx, query.Criteria{Tag: query.Some(tag)})
}

// GetRecipesByTotalTime lists every recipe whose prep plus cook time fits in maxMinutes
func (s *RecipeService) GetRecipesByTotalTime(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error) {
	if maxMinutes < 0 {
		return nil, invalid("maxMinutes", "must not be negative")
	}
	return s.findRecipes(ctx, query.Criteria{MaxTime: query.Some(maxMinutes)})
}

// GetRecipesByDifficultyLevel lists every recipe at the given level. The
// level must be one of the known difficulty levels.
func (s *RecipeService) GetRecipesByDifficultyLevel(ctx context.Context, level string) ([]types.RecipeListItem, error) {
	levels, err := s.ListAvailableDifficultyLevels(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, name := range levels {
		if name == level {
			known = true
			break
		}
	}
	if !known {
		return nil, invalid("difficultyLevel", "must be one of: "+strings.Join(levels, ", "))
	}
	return s.findRecipes(ctx, query.Criteria{Difficulty: query.Some(level)})
}

// GetQuickRecipes lists recipes ready within maxMinutes, 30 when not positive
func (s *RecipeService) GetQuickRecipes(ctx context.Context, maxMinutes int) ([]types.RecipeListItem, error) {
	if maxMinutes <= 0 {
		maxMinutes = query.QuickRecipeMinutes
	}
	return s.findRecipes(ctx, query.Criteria{MaxTime: query.Some(maxMinutes)})
}

// GetRecipesByIngredients lists recipes whose ingredient names contain any,
// or with matchAll every, of the given terms
func (s *RecipeService) GetRecipesByIngredients(ctx context.Context, ingredients []string, matchAll bool) ([]types.RecipeListItem, error) {
	match, err := query.NewIngredientMatch(ingredients, matchAll)
	if errors.Is(err, query.ErrNoIngredients) {
		return nil, invalid("ingredients", err.Error())
	}
	if err != nil {
		return nil, err
	}

	key := cache.IngredientsKey(match)
	var items []types.RecipeListItem
	if s.cached(ctx, key, &items) {
		return items, nil
	}

	recipes, err := s.repo.FindRecipesByIngredients(ctx, match)
	if err != nil {
		return nil, storageError("find recipes by ingredients", err)
	}
	items = toListItems(recipes)
	s.store(ctx, key, items)
	return items, nil
}

// Ping checks the persistent store.
func (s *RecipeService) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}

// CachePing checks the cache. A failing cache only degrades performance.
func (s *RecipeService) CachePing(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func (s *RecipeService) findRecipes(ctx context.Context, criteria query.Criteria) ([]types.RecipeListItem, error) {
	criteria = criteria.Normalize()
	key := cache.FilteredKey(criteria)

	var items []types.RecipeListItem
	if s.cached(ctx, key, &items) {
		return items, nil
	}

	recipes, err := s.repo.FindRecipes(ctx, criteria)
	if err != nil {
		return nil, storageError("find recipes", err)
	}
	items = toListItems(recipes)
	s.store(ctx, key, items)
	return items, nil
}

// cached decodes the entry under key into dst. Any cache problem counts as a miss.
func (s *RecipeService) cached(ctx context.Context, key string, dst interface{}) bool {
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.log.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		s.remove(ctx, key)
		return false
	}
	return true
}

// store caches value under key on a best-effort basis.
func (s *RecipeService) store(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *RecipeService) remove(ctx context.Context, key string) {
	if err := s.cache.Remove(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *RecipeService) invalidateLists(ctx context.Context) {
	if err := s.cache.RemoveByPrefix(ctx, cache.ListPrefix); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("prefix", cache.ListPrefix), zap.Error(err))
	}
}

func (s *RecipeService) invalidateRecipe(ctx context.Context, id uint) {
	s.remove(ctx, cache.DetailKey(id))
	s.invalidateLists(ctx)
}
