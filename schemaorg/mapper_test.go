package schemaorg_test

import (
	"testing"

	"github.com/fwojciec/saucier"
	"github.com/fwojciec/saucier/schemaorg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRecipe(t *testing.T) {
	t.Parallel()

	t.Run("maps a complete node", func(t *testing.T) {
		t.Parallel()

		node := schemaorg.Node{
			"@type":            "Recipe",
			"name":             "  Classic   Pancakes ",
			"recipeIngredient": []any{"2 cups flour", " 1 egg ", ""},
			"recipeInstructions": []any{
				"Whisk the dry ingredients.",
				"Fry until golden.",
			},
			"image":       "https://example.com/pancakes.jpg",
			"prepTime":    "PT10M",
			"cookTime":    "PT1H30M",
			"recipeYield": "Serves 4-6",
		}

		rec, err := schemaorg.MapRecipe(node)

		require.NoError(t, err)
		assert.Equal(t, "Classic Pancakes", rec.Title)
		assert.Equal(t, []string{"2 cups flour", "1 egg"}, rec.Ingredients)
		assert.Equal(t, []string{"Whisk the dry ingredients.", "Fry until golden."}, rec.Steps)
		assert.Equal(t, "https://example.com/pancakes.jpg", rec.Image)
		assert.Equal(t, "10 min", rec.PrepTime)
		assert.Equal(t, "1 h", rec.CookTime)
		assert.Equal(t, "4-6", rec.Yield)
	})

	t.Run("wraps a scalar ingredient as a single-element list", func(t *testing.T) {
		t.Parallel()

		rec, err := schemaorg.MapRecipe(schemaorg.Node{"recipeIngredient": "1 loaf of bread"})

		require.NoError(t, err)
		assert.Equal(t, []string{"1 loaf of bread"}, rec.Ingredients)
	})

	t.Run("falls back to the looser ingredients field", func(t *testing.T) {
		t.Parallel()

		rec, err := schemaorg.MapRecipe(schemaorg.Node{
			"ingredients": []any{"salt", "pepper"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"salt", "pepper"}, rec.Ingredients)
	})

	t.Run("flattens HowToStep objects", func(t *testing.T) {
		t.Parallel()

		node := schemaorg.Node{
			"recipeInstructions": []any{
				map[string]any{"@type": "HowToStep", "text": "Preheat the oven."},
				map[string]any{"@type": "HowToStep", "name": "Bake for 20 minutes."},
			},
		}

		rec, err := schemaorg.MapRecipe(node)

		require.NoError(t, err)
		assert.Equal(t, []string{"Preheat the oven.", "Bake for 20 minutes."}, rec.Steps)
	})

	t.Run("flattens nested HowToSection groups depth-first", func(t *testing.T) {
		t.Parallel()

		node := schemaorg.Node{
			"recipeInstructions": []any{
				map[string]any{
					"@type": "HowToSection",
					"name":  "For the dough",
					"itemListElement": []any{
						map[string]any{"text": "Mix flour and water."},
						map[string]any{"text": "Knead for 10 minutes."},
					},
				},
				map[string]any{
					"@type": "HowToSection",
					"name":  "For the filling",
					"itemListElement": []any{
						map[string]any{"text": "Dice the apples."},
					},
				},
			},
		}

		rec, err := schemaorg.MapRecipe(node)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"For the dough",
			"Mix flour and water.",
			"Knead for 10 minutes.",
			"For the filling",
			"Dice the apples.",
		}, rec.Steps)
	})

	t.Run("resolves image from a list of objects", func(t *testing.T) {
		t.Parallel()

		node := schemaorg.Node{
			"name": "Tart",
			"image": []any{
				map[string]any{"@type": "ImageObject", "url": "https://example.com/tart.jpg"},
			},
		}

		rec, err := schemaorg.MapRecipe(node)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/tart.jpg", rec.Image)
	})

	t.Run("resolves image from an object via @id", func(t *testing.T) {
		t.Parallel()

		node := schemaorg.Node{
			"name":  "Tart",
			"image": map[string]any{"@id": "https://example.com/tart-main.jpg"},
		}

		rec, err := schemaorg.MapRecipe(node)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/tart-main.jpg", rec.Image)
	})

	t.Run("falls back to totalTime for cook time", func(t *testing.T) {
		t.Parallel()

		rec, err := schemaorg.MapRecipe(schemaorg.Node{
			"name":      "Roast",
			"totalTime": "PT2H",
		})

		require.NoError(t, err)
		assert.Equal(t, "2 h", rec.CookTime)
	})

	t.Run("formats numeric yields", func(t *testing.T) {
		t.Parallel()

		rec, err := schemaorg.MapRecipe(schemaorg.Node{
			"name":        "Muffins",
			"recipeYield": float64(12),
		})

		require.NoError(t, err)
		assert.Equal(t, "12", rec.Yield)
	})

	t.Run("returns ENOTFOUND for a node with no meaningful fields", func(t *testing.T) {
		t.Parallel()

		_, err := schemaorg.MapRecipe(schemaorg.Node{
			"@type": "Recipe",
			"image": "https://example.com/img.jpg",
		})

		assert.Equal(t, saucier.ENOTFOUND, saucier.ErrorCode(err))
	})
}
