package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/saucier"
)

// Label patterns for the flattened-text scan. Each anchors a bounded
// window in which a time phrase or a bare yield token is expected.
var (
	prepLabelRE  = regexp.MustCompile(`\bprep\s*:?\s*`)
	cookLabelRE  = regexp.MustCompile(`\b(cook|cooking)\s*:?\s*`)
	totalLabelRE = regexp.MustCompile(`\b(total|ready\s*in)\s*:?\s*`)
	yieldLabelRE = regexp.MustCompile(`\b(serves?|servings?|yield|makes)\s*:?\s*`)

	leadingYieldRE = regexp.MustCompile(`^\s*(\d+(?:\s*[-–]\s*\d+)?)`)
)

// labelWindow is how many characters after a label are inspected for a
// value.
const labelWindow = 60

// labelValues holds times and yield recovered from labeled page text.
type labelValues struct {
	prep  string
	cook  string
	yield string
}

// scanLabels scans flattened page text for prep/cook/total/serves labels.
// cook prefers an explicit cook label, falling back to total/ready-in.
func scanLabels(text string) labelValues {
	lower := strings.ToLower(saucier.Clean(text))

	cook := valueAfter(lower, cookLabelRE)
	if cook == "" {
		cook = valueAfter(lower, totalLabelRE)
	}

	return labelValues{
		prep:  valueAfter(lower, prepLabelRE),
		cook:  cook,
		yield: valueAfter(lower, yieldLabelRE),
	}
}

// valueAfter inspects a bounded window after the first label match,
// preferring a canonical time phrase and falling back to a leading
// digit-or-range token.
func valueAfter(lower string, label *regexp.Regexp) string {
	loc := label.FindStringIndex(lower)
	if loc == nil {
		return ""
	}

	end := loc[1] + labelWindow
	if end > len(lower) {
		end = len(lower)
	}
	window := lower[loc[1]:end]

	if mins, ok := saucier.TimePhraseMinutes(window); ok {
		return saucier.FormatMinutes(mins)
	}
	if m := leadingYieldRE.FindStringSubmatch(window); m != nil {
		token := strings.ReplaceAll(m[1], " ", "")
		return strings.ReplaceAll(token, "–", "-")
	}
	return ""
}
