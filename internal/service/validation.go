package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/recipeshare/catalog/backend/internal/types"
)

// MaxTotalTimeMinutes caps prep plus cook time.
const MaxTotalTimeMinutes = 480

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// prepareInput returns a trimmed copy of the input with tag IDs deduplicated.
func prepareInput(in *types.RecipeInput) *types.RecipeInput {
	out := *in
	out.Title = strings.TrimSpace(in.Title)
	out.Description = strings.TrimSpace(in.Description)
	out.Instructions = strings.TrimSpace(in.Instructions)
	out.ImageURL = strings.TrimSpace(in.ImageURL)

	out.Ingredients = make([]types.IngredientInput, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		out.Ingredients[i] = types.IngredientInput{
			Name:   strings.TrimSpace(ing.Name),
			Amount: strings.TrimSpace(ing.Amount),
			Unit:   strings.TrimSpace(ing.Unit),
		}
	}

	seen := make(map[uint]struct{}, len(in.DietaryTagIDs))
	out.DietaryTagIDs = make([]uint, 0, len(in.DietaryTagIDs))
	for _, id := range in.DietaryTagIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.DietaryTagIDs = append(out.DietaryTagIDs, id)
	}
	return &out
}

// validateInput runs every check a write must pass before anything is stored:
// field rules, the total time cap and the existence of referenced rows.
func (s *RecipeService) validateInput(ctx context.Context, in *types.RecipeInput) error {
	if err := s.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0])
		}
		return invalid("", err.Error())
	}

	if in.PrepTimeMinutes+in.CookTimeMinutes > MaxTotalTimeMinutes {
		return invalid("totalTimeMinutes", "total cooking time cannot exceed 8 hours")
	}

	levels, err := s.repo.ListDifficultyLevels(ctx)
	if err != nil {
		return storageError("list difficulty levels", err)
	}
	levelExists := false
	for _, level := range levels {
		if level.ID == in.DifficultyLevelID {
			levelExists = true
			break
		}
	}
	if !levelExists {
		return invalid("difficultyLevelId", fmt.Sprintf("difficulty level %d does not exist", in.DifficultyLevelID))
	}

	if len(in.DietaryTagIDs) == 0 {
		return nil
	}
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return storageError("list dietary tags", err)
	}
	known := make(map[uint]struct{}, len(tags))
	for _, tag := range tags {
		known[tag.ID] = struct{}{}
	}
	for _, id := range in.DietaryTagIDs {
		if _, ok := known[id]; !ok {
			return invalid("dietaryTagIds", fmt.Sprintf("dietary tag %d does not exist", id))
		}
	}
	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "max":
		message = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		message = fmt.Sprintf("must be at least %s", fe.Param())
	case "url":
		message = "must be a valid URL"
	default:
		message = fmt.Sprintf("failed the %s rule", fe.Tag())
	}
	return invalid(field, message)
}
