package schemaorg

import (
	"net/url"

	"github.com/fwojciec/saucier"
)

// Ensure Extractor implements saucier.Extractor at compile time.
var _ saucier.Extractor = (*Extractor)(nil)

// Extractor implements saucier.Extractor using the page's embedded
// structured data. The first located Recipe node wins.
type Extractor struct{}

// NewExtractor creates a new structured-data Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans the page's structured data and maps the first Recipe node.
// Returns ENOTFOUND when no Recipe node exists or the first node carries
// no meaningful fields.
func (e *Extractor) Extract(html string, finalURL string) (*saucier.Recipe, error) {
	payload, err := ParsePayload(html)
	if err != nil {
		return nil, err
	}

	nodes := FindRecipeNodes(payload)
	if len(nodes) == 0 {
		return nil, saucier.Errorf(saucier.ENOTFOUND, "no structured recipe data found")
	}

	rec, err := MapRecipe(nodes[0])
	if err != nil {
		return nil, err
	}

	rec.Image = resolveImageURL(rec.Image, finalURL)
	return rec, nil
}

// resolveImageURL resolves a relative image reference against the page URL.
// Unparseable values pass through unchanged.
func resolveImageURL(image string, finalURL string) string {
	if image == "" || finalURL == "" {
		return image
	}
	base, err := url.Parse(finalURL)
	if err != nil {
		return image
	}
	ref, err := url.Parse(image)
	if err != nil {
		return image
	}
	return base.ResolveReference(ref).String()
}
