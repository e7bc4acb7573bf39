package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/saucier"
)

// ingredientHeadingRE matches the ingredient-heading vocabulary recipe
// sites use above their ingredient lists.
var ingredientHeadingRE = regexp.MustCompile(`(?i)\b(ingredients|ingredient list|you['’]?ll need|what you['’]?ll need|shopping list)\b`)

// Word-count and item-count bounds for the last-resort list scan, chosen
// to exclude navigation menus (short items) and unrelated long lists.
const (
	minItemWords = 2
	maxItemWords = 25
	minListItems = 4
	maxListItems = 40
)

// ingredientStrategies is the ordered fallback chain for ingredients.
var ingredientStrategies = []listStrategy{
	ingredientsByHeading,
	ingredientsByClass,
	ingredientsByPlausibleList,
}

// ingredientsByHeading anchors on an ingredients heading and takes the
// next list found within a bounded forward scan.
func ingredientsByHeading(p *page) []string {
	idx := p.findHeading(ingredientHeadingRE)
	if idx < 0 {
		return nil
	}
	return p.followingListItems(idx, 2, "ul", "ol")
}

// ingredientsByClass selects list items under ingredient-related class
// naming conventions.
func ingredientsByClass(p *page) []string {
	var items []string
	p.doc.Find("[class*=ingredient] li, .ingredients li, .recipe-ingredients li").Each(func(_ int, li *goquery.Selection) {
		if text := saucier.Clean(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// ingredientsByPlausibleList takes the first list on the page whose items
// look like ingredient lines: each a short phrase, with enough of them to
// rule out navigation.
func ingredientsByPlausibleList(p *page) []string {
	var items []string
	p.doc.Find("ul").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		var candidate []string
		for _, item := range listItems(ul) {
			words := len(strings.Fields(item))
			if words >= minItemWords && words <= maxItemWords {
				candidate = append(candidate, item)
			}
		}
		if len(candidate) >= minListItems && len(candidate) <= maxListItems {
			items = candidate
			return false
		}
		return true
	})
	return items
}
