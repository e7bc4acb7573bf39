package schemaorg

import (
	"fmt"

	"github.com/fwojciec/saucier"
)

// MapRecipe converts a located Recipe node into the canonical form. Every
// field goes through an explicit shape decoder because structured data in
// the wild mixes strings, lists, and nested objects freely for the same
// field. Returns ENOTFOUND when the mapped record carries no meaningful
// content, which signals the caller to fall back to HTML heuristics.
func MapRecipe(node Node) (*saucier.Recipe, error) {
	rec := &saucier.Recipe{
		Title:       saucier.Clean(scalarString(node["name"])),
		Ingredients: decodeStringList(firstField(node, "recipeIngredient", "ingredients")),
		Steps:       decodeInstructions(node["recipeInstructions"]),
		Image:       decodeImage(node["image"]),
		PrepTime:    saucier.FormatDuration(scalarString(firstField(node, "prepTime", "prep_time"))),
		CookTime:    saucier.FormatDuration(scalarString(firstField(node, "cookTime", "cook_time", "totalTime", "total_time"))),
		Yield:       saucier.NormalizeYield(scalarString(node["recipeYield"])),
	}

	if !rec.Meaningful() {
		return nil, saucier.Errorf(saucier.ENOTFOUND, "recipe node carries no meaningful fields")
	}
	return rec, nil
}

// firstField returns the first named field with a non-nil value.
func firstField(node Node, names ...string) any {
	for _, name := range names {
		if v, ok := node[name]; ok && v != nil {
			return v
		}
	}
	return nil
}

// scalarString coerces a scalar field value to a string. Numbers appear in
// the wild for yields ("recipeYield": 4), so they format as integers when
// whole. Lists take their first element.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case []any:
		if len(t) > 0 {
			return scalarString(t[0])
		}
	}
	return ""
}

// decodeStringList coerces a string-or-list field into a cleaned list:
// scalars wrap as a single-element list, entries are cleaned, and empty
// entries are dropped. Order and duplicates are preserved.
func decodeStringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := saucier.Clean(scalarString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := saucier.Clean(scalarString(v)); s != "" {
			return []string{s}
		}
		return nil
	}
}

// decodeInstructions flattens a recipeInstructions value depth-first.
// The value is a small tree: leaves are plain strings or HowToStep objects
// contributing their text (or name); HowToSection groups nest children
// under itemListElement. Section text precedes its children's text.
func decodeInstructions(v any) []string {
	var out []string

	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if s := saucier.Clean(t); s != "" {
				out = append(out, s)
			}
		case []any:
			for _, item := range t {
				walk(item)
			}
		case Node:
			text := saucier.Clean(scalarString(t["text"]))
			if text == "" {
				text = saucier.Clean(scalarString(t["name"]))
			}
			if text != "" {
				out = append(out, text)
			}
			if children, ok := t["itemListElement"]; ok {
				walk(children)
			}
		}
	}
	walk(v)

	return out
}

// decodeImage resolves the image field, which may be a direct URL string,
// a list of strings or objects, or a single object carrying its URL under
// url, @id, or contentUrl.
func decodeImage(v any) string {
	switch t := v.(type) {
	case string:
		return saucier.Clean(t)
	case []any:
		for _, item := range t {
			switch it := item.(type) {
			case string:
				if s := saucier.Clean(it); s != "" {
					return s
				}
			case Node:
				if s := objectImageURL(it); s != "" {
					return s
				}
			}
		}
	case Node:
		return objectImageURL(t)
	}
	return ""
}

func objectImageURL(node Node) string {
	for _, key := range []string{"url", "@id", "contentUrl"} {
		if s := saucier.Clean(scalarString(node[key])); s != "" {
			return s
		}
	}
	return ""
}
