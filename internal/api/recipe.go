package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipeshare/catalog/backend/internal/query"
	"github.com/recipeshare/catalog/backend/internal/service"
	"github.com/recipeshare/catalog/backend/internal/types"
)

// RecipeHandler serves the recipe catalog endpoints
type RecipeHandler struct {
	recipeService service.IRecipeService
	writeLimit    gin.HandlerFunc
}

// NewRecipeHandler creates a new RecipeHandler. writeLimit guards the
// mutating routes and may be nil.
func NewRecipeHandler(recipeService service.IRecipeService, writeLimit gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		writeLimit:    writeLimit,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	writes := []gin.HandlerFunc{}
	if h.writeLimit != nil {
		writes = append(writes, h.writeLimit)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/dietary-tags", h.ListDietaryTags)
		recipes.GET("/difficulty-levels", h.ListDifficultyLevels)
		recipes.GET("/by-tag/:tag", h.GetRecipesByTag)
		recipes.GET("/by-time", h.GetRecipesByTime)
		recipes.GET("/by-difficulty/:level", h.GetRecipesByDifficulty)
		recipes.GET("/quick", h.GetQuickRecipes)
		recipes.GET("/by-ingredients", h.GetRecipesByIngredients)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", append(writes, h.CreateRecipe)...)
		recipes.PUT("/:id", append(writes, h.UpdateRecipe)...)
		recipes.DELETE("/:id", append(writes, h.DeleteRecipe)...)
	}
}

type listRecipesParams struct {
	PageNumber   int     `form:"pageNumber"`
	PageSize     int     `form:"pageSize"`
	SearchQuery  *string `form:"searchQuery"`
	Tag          *string `form:"tag"`
	Difficulty   *string `form:"difficulty"`
	MaxTime      *int    `form:"maxTime"`
	QuickRecipes bool    `form:"quickRecipes"`
}

func optional[T any](v *T) query.Optional[T] {
	if v == nil {
		return query.None[T]()
	}
	return query.Some(*v)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var params listRecipesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "", "Invalid query parameters")
		return
	}

	page, err := h.recipeService.ListRecipes(c.Request.Context(), query.Criteria{
		PageNumber:   params.PageNumber,
		PageSize:     params.PageSize,
		Search:       optional(params.SearchQuery),
		Tag:          optional(params.Tag),
		Difficulty:   optional(params.Difficulty),
		MaxTime:      optional(params.MaxTime),
		QuickRecipes: params.QuickRecipes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		badRequest(c, "id", "Invalid recipe id")
		return 0, false
	}
	return uint(id), true
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "", "Invalid request body")
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/api/recipes/"+strconv.FormatUint(uint64(recipe.ID), 10))
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "", "Invalid request body")
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.recipeService.DeleteRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, service.ErrNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListDietaryTags(c *gin.Context) {
	tags, err := h.recipeService.ListAvailableDietaryTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *RecipeHandler) ListDifficultyLevels(c *gin.Context) {
	levels, err := h.recipeService.ListAvailableDifficultyLevels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, levels)
}

func (h *RecipeHandler) GetRecipesByTag(c *gin.Context) {
	recipes, err := h.recipeService.GetRecipesByDietaryTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// queryInt reads an integer query parameter, reporting a 400 when it is malformed.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, name, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func (h *RecipeHandler) GetRecipesByTime(c *gin.Context) {
	if _, present := c.GetQuery("maxMinutes"); !present {
		badRequest(c, "maxMinutes", "maxMinutes is required")
		return
	}
	maxMinutes, ok := queryInt(c, "maxMinutes", 0)
	if !ok {
		return
	}

	recipes, err := h.recipeService.GetRecipesByTotalTime(c.Request.Context(), maxMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipesByDifficulty(c *gin.Context) {
	recipes, err := h.recipeService.GetRecipesByDifficultyLevel(c.Request.Context(), c.Param("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetQuickRecipes(c *gin.Context) {
	maxMinutes, ok := queryInt(c, "maxMinutes", query.QuickRecipeMinutes)
	if !ok {
		return
	}

	recipes, err := h.recipeService.GetQuickRecipes(c.Request.Context(), maxMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipesByIngredients(c *gin.Context) {
	var ingredients []string
	for _, raw := range c.QueryArray("ingredients") {
		ingredients = append(ingredients, strings.Split(raw, ",")...)
	}

	matchAll := false
	if raw := c.Query("matchAll"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "matchAll", "matchAll must be true or false")
			return
		}
		matchAll = v
	}

	recipes, err := h.recipeService.GetRecipesByIngredients(c.Request.Context(), ingredients, matchAll)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}
