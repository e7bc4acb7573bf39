// Package extract sequences the extraction pipeline: structured data
// first, HTML heuristics as fallback, then derived-field backfill and the
// output-shape guarantee.
package extract

import (
	"github.com/fwojciec/saucier"
)

// Ensure Pipeline implements saucier.Extractor at compile time.
var _ saucier.Extractor = (*Pipeline)(nil)

// Pipeline runs extraction attempts in order and assembles the final
// Recipe. It is stateless and safe for concurrent use.
type Pipeline struct {
	structured saucier.Extractor
	heuristic  saucier.Extractor
}

// NewPipeline creates a Pipeline from a structured-data extractor and an
// HTML heuristic extractor.
func NewPipeline(structured, heuristic saucier.Extractor) *Pipeline {
	return &Pipeline{
		structured: structured,
		heuristic:  heuristic,
	}
}

// Extract always returns a Recipe with every field present; it never fails
// for content reasons. A failed attempt (no structured data, no heuristic
// match) selects the next stage rather than surfacing an error, and a page
// yielding nothing produces an all-empty Recipe.
func (p *Pipeline) Extract(html string, finalURL string) (*saucier.Recipe, error) {
	rec := p.attempt(html, finalURL)

	// Backfill cook time from time mentions in step text when the page
	// itself never declared one.
	if rec.CookTime == "" && len(rec.Steps) > 0 {
		rec.CookTime = saucier.DeriveCookFromSteps(rec.Steps)
	}

	rec.Normalize()
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	if rec.Steps == nil {
		rec.Steps = []string{}
	}
	return rec, nil
}

// attempt returns the structured result when it carries ingredients or
// steps, otherwise the heuristic result, otherwise an empty Recipe.
// Failures of either stage count as misses, not errors.
func (p *Pipeline) attempt(html string, finalURL string) *saucier.Recipe {
	if rec, err := p.structured.Extract(html, finalURL); err == nil && rec != nil {
		if len(rec.Ingredients) > 0 || len(rec.Steps) > 0 {
			return rec
		}
	}

	if rec, err := p.heuristic.Extract(html, finalURL); err == nil && rec != nil {
		return rec
	}

	return &saucier.Recipe{}
}
