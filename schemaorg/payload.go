// Package schemaorg extracts schema.org Recipe entities from web pages.
// It scans the page's embedded structured data (JSON-LD script blocks and
// microdata attributes), locates Recipe-typed nodes, and maps their
// polymorphic fields onto the canonical saucier.Recipe.
package schemaorg

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/saucier"
)

// Node is one candidate entity from the page's structured data. Field
// values are polymorphic (string, list, or nested object) and are resolved
// by the mapper's per-field decoders.
type Node = map[string]any

// Payload holds all structured data found in a page, keyed by syntax.
type Payload struct {
	// JSONLD holds the decoded top-level values of every valid
	// application/ld+json block, in document order. A value may be a
	// single object or an array of objects.
	JSONLD []any

	// Microdata holds one Node per top-level itemscope element.
	Microdata []Node
}

// ParsePayload scans HTML for embedded structured data. Invalid JSON-LD
// blocks are skipped rather than failing the scan.
func ParsePayload(html string) (*Payload, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, saucier.Errorf(saucier.EINVALID, "failed to parse HTML: %v", err)
	}

	p := &Payload{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(sel.Text()), &v); err != nil {
			return
		}
		p.JSONLD = append(p.JSONLD, v)
	})

	doc.Find("[itemscope]").Each(func(_ int, sel *goquery.Selection) {
		// Only top-level scopes become payload entries; nested scopes are
		// folded into their parent as nested nodes.
		if sel.ParentsFiltered("[itemscope]").Length() > 0 {
			return
		}
		if node := parseMicrodataItem(sel); len(node) > 0 {
			p.Microdata = append(p.Microdata, node)
		}
	})

	return p, nil
}

// parseMicrodataItem builds a Node from an itemscope element. Property
// names come from itemprop attributes; repeated properties accumulate into
// lists and nested itemscopes become nested nodes.
func parseMicrodataItem(sel *goquery.Selection) Node {
	node := Node{}
	if itemtype, ok := sel.Attr("itemtype"); ok {
		node["@type"] = typeName(itemtype)
	}
	collectProperties(sel, node)
	return node
}

func collectProperties(sel *goquery.Selection, node Node) {
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		name, hasProp := child.Attr("itemprop")
		_, isScope := child.Attr("itemscope")

		switch {
		case hasProp && isScope:
			addProperty(node, name, parseMicrodataItem(child))
		case hasProp:
			if v := propertyValue(child); v != "" {
				addProperty(node, name, v)
			}
		case isScope:
			// independent nested scope without a property name; handled
			// as its own top-level item by the caller's scan
		default:
			collectProperties(child, node)
		}
	})
}

// propertyValue resolves a microdata property to its string value using
// the value attribute appropriate for the element.
func propertyValue(sel *goquery.Selection) string {
	if content, ok := sel.Attr("content"); ok {
		return saucier.Clean(content)
	}
	switch goquery.NodeName(sel) {
	case "img", "audio", "video", "embed", "iframe", "source":
		if src, ok := sel.Attr("src"); ok {
			return saucier.Clean(src)
		}
	case "a", "link", "area":
		if href, ok := sel.Attr("href"); ok {
			return saucier.Clean(href)
		}
	case "time":
		if dt, ok := sel.Attr("datetime"); ok {
			return saucier.Clean(dt)
		}
	case "meta":
		return ""
	}
	return saucier.Clean(sel.Text())
}

// addProperty sets a property value, accumulating repeats into a list in
// encounter order.
func addProperty(node Node, name string, value any) {
	existing, ok := node[name]
	if !ok {
		node[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		node[name] = append(list, value)
		return
	}
	node[name] = []any{existing, value}
}

// typeName reduces an itemtype URL like "https://schema.org/Recipe" to the
// bare type name so both syntaxes share one type test.
func typeName(itemtype string) string {
	itemtype = strings.TrimRight(strings.TrimSpace(itemtype), "/")
	if i := strings.LastIndex(itemtype, "/"); i >= 0 {
		return itemtype[i+1:]
	}
	return itemtype
}
