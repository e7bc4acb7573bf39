package schemaorg

import "strings"

// FindRecipeNodes returns every Recipe-typed node in the payload in
// encounter order: JSON-LD first (recursing into @graph groupings), then
// microdata. Type matching is case-insensitive and accepts type lists
// where any element is "Recipe".
func FindRecipeNodes(p *Payload) []Node {
	var nodes []Node

	consider := func(v any) {
		if node, ok := v.(Node); ok && isRecipeNode(node) {
			nodes = append(nodes, node)
		}
	}

	for _, item := range p.JSONLD {
		switch v := item.(type) {
		case Node:
			consider(v)
			if graph, ok := v["@graph"].([]any); ok {
				for _, g := range graph {
					consider(g)
				}
			}
		case []any:
			for _, it := range v {
				consider(it)
			}
		}
	}

	for _, item := range p.Microdata {
		consider(item)
	}

	return nodes
}

// isRecipeNode tests a node's declared type, which may be a single value
// or a list of values.
func isRecipeNode(node Node) bool {
	switch t := node["@type"].(type) {
	case string:
		return isRecipeType(t)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && isRecipeType(s) {
				return true
			}
		}
	}
	return false
}

func isRecipeType(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "Recipe")
}
