package mock

import "github.com/fwojciec/saucier"

var _ saucier.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of saucier.Extractor.
type Extractor struct {
	ExtractFn func(html string, finalURL string) (*saucier.Recipe, error)
}

func (e *Extractor) Extract(html string, finalURL string) (*saucier.Recipe, error) {
	return e.ExtractFn(html, finalURL)
}
