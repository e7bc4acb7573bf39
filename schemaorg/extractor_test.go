package schemaorg_test

import (
	"testing"

	"github.com/fwojciec/saucier"
	"github.com/fwojciec/saucier/schemaorg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a recipe from JSON-LD", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{
	"@context": "https://schema.org",
	"@type": "Recipe",
	"name": "Garlic Butter Shrimp",
	"recipeIngredient": ["500g shrimp", "3 cloves garlic", "50g butter", "1 lemon", "parsley"],
	"recipeInstructions": [
		{"@type": "HowToStep", "text": "Melt the butter in a pan."},
		{"@type": "HowToStep", "text": "Add garlic and cook 1 min."},
		{"@type": "HowToStep", "text": "Add shrimp and cook 4 mins."}
	],
	"image": "https://example.com/shrimp.jpg",
	"prepTime": "PT10M",
	"cookTime": "PT5M",
	"recipeYield": "4"
}
</script>
</head>
<body><h1>Not the recipe title</h1></body>
</html>`

		e := schemaorg.NewExtractor()
		rec, err := e.Extract(html, "https://example.com/garlic-shrimp")

		require.NoError(t, err)
		assert.Equal(t, "Garlic Butter Shrimp", rec.Title)
		assert.Len(t, rec.Ingredients, 5)
		assert.Equal(t, []string{
			"Melt the butter in a pan.",
			"Add garlic and cook 1 min.",
			"Add shrimp and cook 4 mins.",
		}, rec.Steps)
		assert.Equal(t, "https://example.com/shrimp.jpg", rec.Image)
		assert.Equal(t, "10 min", rec.PrepTime)
		assert.Equal(t, "5 min", rec.CookTime)
		assert.Equal(t, "4", rec.Yield)
	})

	t.Run("extracts a recipe from microdata", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article itemscope itemtype="http://schema.org/Recipe">
	<h1 itemprop="name">Overnight Oats</h1>
	<ul>
		<li itemprop="recipeIngredient">50g oats</li>
		<li itemprop="recipeIngredient">150ml milk</li>
	</ul>
	<meta itemprop="prepTime" content="PT5M">
</article>
</body></html>`

		e := schemaorg.NewExtractor()
		rec, err := e.Extract(html, "https://example.com/oats")

		require.NoError(t, err)
		assert.Equal(t, "Overnight Oats", rec.Title)
		assert.Equal(t, []string{"50g oats", "150ml milk"}, rec.Ingredients)
		assert.Equal(t, "5 min", rec.PrepTime)
	})

	t.Run("resolves relative image URLs against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@type": "Recipe", "name": "Flatbread", "image": "/images/flatbread.jpg"}
</script>
</head></html>`

		e := schemaorg.NewExtractor()
		rec, err := e.Extract(html, "https://food.example.com/recipes/flatbread")

		require.NoError(t, err)
		assert.Equal(t, "https://food.example.com/images/flatbread.jpg", rec.Image)
	})

	t.Run("returns ENOTFOUND without structured data", func(t *testing.T) {
		t.Parallel()

		e := schemaorg.NewExtractor()
		_, err := e.Extract("<html><body><h1>Just a blog post</h1></body></html>", "https://example.com")

		assert.Equal(t, saucier.ENOTFOUND, saucier.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for a title-free, content-free node", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@type": "Recipe", "image": "https://example.com/img.jpg"}
</script>
</head></html>`

		e := schemaorg.NewExtractor()
		_, err := e.Extract(html, "https://example.com")

		assert.Equal(t, saucier.ENOTFOUND, saucier.ErrorCode(err))
	})
}
