package cache

import (
	"strconv"

	"github.com/recipeshare/catalog/backend/internal/query"
)

const (
	// ListPrefix covers every cached list, including ingredient matches.
	ListPrefix = "recipe:list:"

	ingredientsPrefix = ListPrefix + "ingredients:"

	// detailPrefix and ListPrefix must stay disjoint so a list flush never
	// drops details and the reverse.
	detailPrefix = "recipe:id:"
)

// ListKey identifies one page of a filtered listing.
func ListKey(criteria query.Criteria) string {
	return ListPrefix + criteria.Hash()
}

// FilteredKey identifies an unpaged listing such as the by-tag lists.
func FilteredKey(criteria query.Criteria) string {
	return ListPrefix + "all:" + query.Criteria{
		PageNumber:   1,
		PageSize:     query.DefaultPageSize,
		Search:       criteria.Search,
		Tag:          criteria.Tag,
		Difficulty:   criteria.Difficulty,
		MaxTime:      criteria.MaxTime,
		QuickRecipes: criteria.QuickRecipes,
	}.Hash()
}

// IngredientsKey identifies an ingredient search.
func IngredientsKey(match query.IngredientMatch) string {
	return ingredientsPrefix + match.Hash()
}

// DetailKey identifies a single recipe.
func DetailKey(id uint) string {
	return detailPrefix + strconv.FormatUint(uint64(id), 10)
}
