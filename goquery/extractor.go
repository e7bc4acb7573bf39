// Package goquery provides the HTML heuristic recipe extractor. It runs
// when a page carries no usable structured data, recovering recipe fields
// from visual conventions: heading-anchored lists, class-name patterns,
// numbered paragraphs, and labeled time/yield text.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/saucier"
	"golang.org/x/net/html"
)

// Ensure Extractor implements saucier.Extractor at compile time.
var _ saucier.Extractor = (*Extractor)(nil)

// Extractor implements saucier.Extractor using ordered heuristic chains.
// Each field runs its own chain of strategies; the first strategy that
// yields anything wins and the rest are skipped.
type Extractor struct{}

// NewExtractor creates a new heuristic Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract recovers recipe fields from rendered markup. Returns ENOTFOUND
// when no heuristic finds anything meaningful.
func (e *Extractor) Extract(htmlText string, finalURL string) (*saucier.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, saucier.Errorf(saucier.EINVALID, "failed to parse HTML: %v", err)
	}

	p := newPage(doc)

	rec := &saucier.Recipe{
		Title:       extractTitle(p),
		Ingredients: firstNonEmpty(p, ingredientStrategies),
		Steps:       firstNonEmpty(p, stepStrategies),
	}

	labels := scanLabels(p.text())
	rec.PrepTime = labels.prep
	rec.CookTime = labels.cook
	rec.Yield = labels.yield

	rec.Normalize()
	if !rec.Meaningful() {
		return nil, saucier.Errorf(saucier.ENOTFOUND, "no recipe content found in markup")
	}
	return rec, nil
}

// listStrategy is one heuristic in an ordered chain. It returns nil or an
// empty slice on a miss, letting the next strategy run.
type listStrategy func(p *page) []string

// firstNonEmpty runs strategies in order and returns the first hit.
func firstNonEmpty(p *page, strategies []listStrategy) []string {
	for _, strategy := range strategies {
		if items := strategy(p); len(items) > 0 {
			return items
		}
	}
	return nil
}

// page wraps a parsed document together with its elements in document
// order, which the heading-anchored strategies use for forward scans.
type page struct {
	doc      *goquery.Document
	elements *goquery.Selection
}

func newPage(doc *goquery.Document) *page {
	return &page{
		doc:      doc,
		elements: doc.Find("*"),
	}
}

// text returns the page's flattened plain text with collapsed whitespace.
func (p *page) text() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range p.doc.Nodes {
		walk(n)
	}
	return saucier.Clean(b.String())
}

// findHeading returns the index of the first element whose own text (text
// directly inside the element, not its descendants) matches the heading
// vocabulary, or -1.
func (p *page) findHeading(vocabulary *regexp.Regexp) int {
	found := -1
	p.elements.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if vocabulary.MatchString(ownText(sel)) {
			found = i
			return false
		}
		return true
	})
	return found
}

// followingListItems scans forward in document order from the element at
// index start, inspecting up to lookahead list elements with the given
// tags, and returns the first list's cleaned non-empty items.
func (p *page) followingListItems(start int, lookahead int, tags ...string) []string {
	var items []string
	seen := 0
	p.elements.Slice(start+1, goquery.ToEnd).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !isTag(sel, tags...) {
			return true
		}
		seen++
		items = listItems(sel)
		return len(items) == 0 && seen < lookahead
	})
	return items
}

// listItems returns the cleaned non-empty li texts of a list element.
func listItems(sel *goquery.Selection) []string {
	var items []string
	sel.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := saucier.Clean(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func isTag(sel *goquery.Selection, tags ...string) bool {
	name := goquery.NodeName(sel)
	for _, tag := range tags {
		if name == tag {
			return true
		}
	}
	return false
}

// ownText concatenates the text nodes directly inside an element,
// excluding descendant elements' text.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return saucier.Clean(b.String())
}

// extractTitle returns the first h1, else the first h2, else the document
// title.
func extractTitle(p *page) string {
	for _, selector := range []string{"h1", "h2", "title"} {
		if text := saucier.Clean(p.doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
