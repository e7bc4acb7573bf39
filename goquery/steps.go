package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/saucier"
)

// stepHeadingRE matches the step-heading vocabulary recipe sites use above
// their method sections.
var stepHeadingRE = regexp.MustCompile(`(?i)\b(method|steps?|instructions?|preparation|directions?|how to(?: make)?)\b`)

// numberedRE matches numbered-list markers like "1. " or "2) " at the
// start of a paragraph.
var numberedRE = regexp.MustCompile(`^\d+[.)]\s+`)

var stepWordRE = regexp.MustCompile(`(?i)\bstep\b`)

// stepStrategies is the ordered fallback chain for steps.
var stepStrategies = []listStrategy{
	stepsByHeading,
	stepsByClass,
	stepsByNumberedParagraphs,
}

// stepsByHeading anchors on a method heading and takes the next ordered or
// unordered list found within a bounded forward scan.
func stepsByHeading(p *page) []string {
	idx := p.findHeading(stepHeadingRE)
	if idx < 0 {
		return nil
	}
	return p.followingListItems(idx, 2, "ol", "ul")
}

// stepsByClass selects items under method/instruction/direction class
// naming conventions.
func stepsByClass(p *page) []string {
	var items []string
	p.doc.Find("[class*=method] li, .method__item, .instructions li, .direction li, .directions li").Each(func(_ int, el *goquery.Selection) {
		if text := saucier.Clean(el.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// stepsByNumberedParagraphs collects paragraphs that start with a numbered
// marker or that are long enough and mention "step".
func stepsByNumberedParagraphs(p *page) []string {
	var items []string
	p.doc.Find("p").Each(func(_ int, el *goquery.Selection) {
		text := saucier.Clean(el.Text())
		if text == "" {
			return
		}
		if numberedRE.MatchString(text) || (len(strings.Fields(text)) > 6 && stepWordRE.MatchString(text)) {
			items = append(items, text)
		}
	})
	return items
}
