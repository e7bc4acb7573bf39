package saucier

import (
	"context"
	"encoding/json"
	"time"
)

// Recipe is the canonical extraction result. Collections are never null on
// the wire (empty slices encode as []); optional scalars encode as null
// when empty. Times use the canonical "<n> min" / "<n> h" form and yields
// the canonical "4" / "4-6" form.
type Recipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Image       string   `json:"image"`
	PrepTime    string   `json:"prepTime"`
	CookTime    string   `json:"cookTime"`
	Yield       string   `json:"recipeYield"`
}

// Meaningful reports whether the recipe carries any usable content.
// A recipe with an empty title and no ingredients or steps is treated as
// an extraction miss, not a result.
func (r *Recipe) Meaningful() bool {
	return r.Title != "" || len(r.Ingredients) > 0 || len(r.Steps) > 0
}

// Normalize cleans every text field in place and drops empty entries from
// the ingredient and step lists. Entry order is preserved.
func (r *Recipe) Normalize() {
	r.Title = Clean(r.Title)
	r.Ingredients = cleanList(r.Ingredients)
	r.Steps = cleanList(r.Steps)
	r.Image = Clean(r.Image)
	r.PrepTime = Clean(r.PrepTime)
	r.CookTime = Clean(r.CookTime)
	r.Yield = Clean(r.Yield)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := Clean(item); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// MarshalJSON guarantees the output shape: all seven fields present,
// collections as arrays (never null), empty optional scalars as null.
func (r Recipe) MarshalJSON() ([]byte, error) {
	type wire struct {
		Title       string   `json:"title"`
		Ingredients []string `json:"ingredients"`
		Steps       []string `json:"steps"`
		Image       *string  `json:"image"`
		PrepTime    *string  `json:"prepTime"`
		CookTime    *string  `json:"cookTime"`
		Yield       *string  `json:"recipeYield"`
	}

	w := wire{
		Title:       r.Title,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Image:       nullable(r.Image),
		PrepTime:    nullable(r.PrepTime),
		CookTime:    nullable(r.CookTime),
		Yield:       nullable(r.Yield),
	}
	if w.Ingredients == nil {
		w.Ingredients = []string{}
	}
	if w.Steps == nil {
		w.Steps = []string{}
	}
	return json.Marshal(w)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Extractor produces a Recipe from already-fetched page content.
// Implementations return ENOTFOUND when the page yields nothing meaningful;
// they never fail for content reasons.
type Extractor interface {
	// Extract processes raw HTML and the post-redirect URL of the page.
	Extract(html string, finalURL string) (*Recipe, error)
}

// Fetcher retrieves page HTML from URLs. Fetching is the only blocking
// operation in the system; the context controls timeout and cancellation.
type Fetcher interface {
	// Fetch returns the page body and the final URL after redirects.
	Fetch(ctx context.Context, url string) (html string, finalURL string, err error)

	// Close releases client resources.
	Close() error
}

// StoredRecipe is a cached extraction result keyed by source URL.
type StoredRecipe struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Recipe      *Recipe   `json:"recipe"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the stored recipe contains invalid fields.
func (r *StoredRecipe) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "recipe source URL required")
	}
	if r.Recipe == nil {
		return Errorf(EINVALID, "recipe content required")
	}
	return nil
}

// RecipeFilter represents a filter for FindRecipes.
type RecipeFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecipeService represents a service for caching extraction results.
type RecipeService interface {
	// CreateRecipe stores a result, replacing any previous result for the
	// same source URL.
	CreateRecipe(ctx context.Context, rec *StoredRecipe) error

	// FindRecipeByURL retrieves the cached result for a source URL.
	// Returns ENOTFOUND if no result is cached.
	FindRecipeByURL(ctx context.Context, url string) (*StoredRecipe, error)

	// FindRecipes retrieves cached results matching the filter, newest first.
	FindRecipes(ctx context.Context, filter RecipeFilter) ([]*StoredRecipe, error)

	// DeleteRecipe permanently removes a cached result.
	// Returns ENOTFOUND if the result does not exist.
	DeleteRecipe(ctx context.Context, id string) error
}
