package extract_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/saucier"
	"github.com/fwojciec/saucier/extract"
	"github.com/fwojciec/saucier/goquery"
	"github.com/fwojciec/saucier/mock"
	"github.com/fwojciec/saucier/schemaorg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Extract(t *testing.T) {
	t.Parallel()

	t.Run("adopts the structured result without running heuristics", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{
					Title:       "Structured",
					Ingredients: []string{"flour"},
					Steps:       []string{"Mix"},
					CookTime:    "20 min",
				}, nil
			},
		}
		heuristic := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				t.Fatal("heuristic extractor must not run when structured data suffices")
				return nil, nil
			},
		}

		p := extract.NewPipeline(structured, heuristic)
		rec, err := p.Extract("<html></html>", "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "Structured", rec.Title)
		assert.Equal(t, "20 min", rec.CookTime)
	})

	t.Run("falls back when structured data is absent", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return nil, saucier.Errorf(saucier.ENOTFOUND, "no structured recipe data found")
			},
		}
		heuristic := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{Title: "Heuristic", Steps: []string{"Cook it"}}, nil
			},
		}

		p := extract.NewPipeline(structured, heuristic)
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.Equal(t, "Heuristic", rec.Title)
	})

	t.Run("falls back when the structured result has no ingredients or steps", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{Title: "Title Only"}, nil
			},
		}
		heuristic := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{Title: "From Markup", Ingredients: []string{"rice"}}, nil
			},
		}

		p := extract.NewPipeline(structured, heuristic)
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.Equal(t, "From Markup", rec.Title)
		assert.Equal(t, []string{"rice"}, rec.Ingredients)
	})

	t.Run("treats internal structured-path failures as missing data", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return nil, errors.New("malformed payload")
			},
		}
		heuristic := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{Title: "Recovered"}, nil
			},
		}

		p := extract.NewPipeline(structured, heuristic)
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.Equal(t, "Recovered", rec.Title)
	})

	t.Run("backfills cook time from step text", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{
					Title: "Backfilled",
					Steps: []string{"Simmer 5 mins", "Rest 2 mins"},
				}, nil
			},
		}

		p := extract.NewPipeline(structured, failingExtractor())
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.Equal(t, "7 min", rec.CookTime)
	})

	t.Run("keeps an explicit cook time over the derived one", func(t *testing.T) {
		t.Parallel()

		structured := &mock.Extractor{
			ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
				return &saucier.Recipe{
					Title:    "Explicit",
					Steps:    []string{"Simmer 5 mins"},
					CookTime: "1 h",
				}, nil
			},
		}

		p := extract.NewPipeline(structured, failingExtractor())
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.Equal(t, "1 h", rec.CookTime)
	})

	t.Run("returns an all-empty recipe when every stage misses", func(t *testing.T) {
		t.Parallel()

		p := extract.NewPipeline(failingExtractor(), failingExtractor())
		rec, err := p.Extract("<html></html>", "")

		require.NoError(t, err)
		assert.False(t, rec.Meaningful())

		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"","ingredients":[],"steps":[],"image":null,"prepTime":null,"cookTime":null,"recipeYield":null}`, string(data))
	})
}

func failingExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_, _ string) (*saucier.Recipe, error) {
			return nil, saucier.Errorf(saucier.ENOTFOUND, "nothing found")
		},
	}
}

// End-to-end coverage over the real extractors, mirroring how the service
// wires the pipeline.
func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	newPipeline := func() *extract.Pipeline {
		return extract.NewPipeline(schemaorg.NewExtractor(), goquery.NewExtractor())
	}

	t.Run("structured data bypasses the heuristic path", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{
	"@type": "Recipe",
	"name": "JSON-LD Curry",
	"recipeIngredient": ["2 onions", "1 tbsp curry paste", "400ml coconut milk", "500g chicken", "rice to serve"],
	"recipeInstructions": [
		{"@type": "HowToStep", "text": "Fry the onions."},
		{"@type": "HowToStep", "text": "Add paste and chicken."},
		{"@type": "HowToStep", "text": "Pour in coconut milk and simmer."}
	]
}
</script>
</head>
<body>
<h1>A Completely Different Page Title</h1>
</body></html>`

		rec, err := newPipeline().Extract(html, "https://example.com/curry")

		require.NoError(t, err)
		assert.Equal(t, "JSON-LD Curry", rec.Title)
		assert.Len(t, rec.Ingredients, 5)
		assert.Equal(t, []string{
			"Fry the onions.",
			"Add paste and chicken.",
			"Pour in coconut milk and simmer.",
		}, rec.Steps)
	})

	t.Run("heuristic path recovers markup-only recipes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Markup Muffins</h1>
<h2>Ingredients</h2>
<ul>
	<li>2 cups flour</li>
	<li>1 cup milk</li>
	<li>2 eggs whisked</li>
	<li>1 tsp baking powder</li>
	<li>50g melted butter</li>
	<li>pinch of salt</li>
</ul>
<h2>Method</h2>
<ol>
	<li>Mix the dry ingredients.</li>
	<li>Fold in milk, eggs and butter.</li>
	<li>Divide into a muffin tin.</li>
	<li>Bake 20 mins until risen.</li>
</ol>
</body></html>`

		rec, err := newPipeline().Extract(html, "https://example.com/muffins")

		require.NoError(t, err)
		assert.Equal(t, "Markup Muffins", rec.Title)
		assert.Len(t, rec.Ingredients, 6)
		assert.Len(t, rec.Steps, 4)
		// no labeled cook time on the page: derived from "Bake 20 mins"
		assert.Equal(t, "20 min", rec.CookTime)
	})

	t.Run("structured title-only node falls through to heuristics", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@type": "Recipe", "name": "Bare Structured Title"}
</script>
</head>
<body>
<h1>Heuristic Title</h1>
<h2>Ingredients</h2>
<ul>
	<li>1 ripe avocado</li>
	<li>2 slices sourdough</li>
	<li>1 pinch chilli flakes</li>
	<li>1 squeeze lemon juice</li>
</ul>
</body></html>`

		rec, err := newPipeline().Extract(html, "https://example.com/toast")

		require.NoError(t, err)
		assert.Equal(t, "Heuristic Title", rec.Title)
		assert.Len(t, rec.Ingredients, 4)
	})
}
