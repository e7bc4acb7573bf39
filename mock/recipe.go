package mock

import (
	"context"

	"github.com/fwojciec/saucier"
)

var _ saucier.RecipeService = (*RecipeService)(nil)

// RecipeService is a mock implementation of saucier.RecipeService.
type RecipeService struct {
	CreateRecipeFn    func(ctx context.Context, rec *saucier.StoredRecipe) error
	FindRecipeByURLFn func(ctx context.Context, url string) (*saucier.StoredRecipe, error)
	FindRecipesFn     func(ctx context.Context, filter saucier.RecipeFilter) ([]*saucier.StoredRecipe, error)
	DeleteRecipeFn    func(ctx context.Context, id string) error
}

func (s *RecipeService) CreateRecipe(ctx context.Context, rec *saucier.StoredRecipe) error {
	return s.CreateRecipeFn(ctx, rec)
}

func (s *RecipeService) FindRecipeByURL(ctx context.Context, url string) (*saucier.StoredRecipe, error) {
	return s.FindRecipeByURLFn(ctx, url)
}

func (s *RecipeService) FindRecipes(ctx context.Context, filter saucier.RecipeFilter) ([]*saucier.StoredRecipe, error) {
	return s.FindRecipesFn(ctx, filter)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	return s.DeleteRecipeFn(ctx, id)
}
