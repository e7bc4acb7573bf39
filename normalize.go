package saucier

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// timeRE matches human time phrases like "15-20 minutes", "1–2 hrs",
// "5 min", "90 m". Group 1 is the number (or the low end of a range),
// group 2 the optional high end, group 3 the unit word.
var timeRE = regexp.MustCompile(`(?i)(\d{1,3})(?:\s*(?:-|–|to)\s*(\d{1,3}))?\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)\b`)

var (
	digitsRE   = regexp.MustCompile(`^\d+$`)
	isoHoursRE = regexp.MustCompile(`(\d+)H`)
	isoMinsRE  = regexp.MustCompile(`(\d+)M`)
	isoSecsRE  = regexp.MustCompile(`(\d+)S`)
	yieldRE    = regexp.MustCompile(`\d+(?:\s*[-–]\s*\d+)?`)
)

// Clean collapses any run of whitespace to a single space and trims.
// It is idempotent and returns "" for empty input.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatMinutes renders a minute count in the canonical duration form:
// "<n/60> h" for an hour or more (fractional hours truncated), "<n> min"
// otherwise. Negative input returns "".
func FormatMinutes(n int) string {
	if n < 0 {
		return ""
	}
	if n >= 60 {
		return strconv.Itoa(n/60) + " h"
	}
	return strconv.Itoa(n) + " min"
}

// FormatDuration normalizes a raw duration string into the canonical form.
// Three input shapes are tried in order: a bare digit string (minutes), an
// ISO 8601 "PT…" token, and a free-text phrase with a number and an hour or
// minute unit (the lower bound of a range wins). Input matching none of
// these is returned cleaned but otherwise unchanged; empty input returns "".
func FormatDuration(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ""
	}
	s := strings.ToUpper(cleaned)

	// digits → minutes
	if digitsRE.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cleaned
		}
		return FormatMinutes(n)
	}

	// ISO 8601 PT durations
	if strings.HasPrefix(s, "PT") {
		hours := isoComponent(isoHoursRE, s[2:])
		mins := isoComponent(isoMinsRE, s[2:])
		// if only seconds, approximate to minutes (min 1)
		if hours == 0 && mins == 0 {
			if secs := isoComponent(isoSecsRE, s[2:]); secs > 0 {
				mins = int(math.Round(float64(secs) / 60))
				if mins < 1 {
					mins = 1
				}
			}
		}
		return FormatMinutes(hours*60 + mins)
	}

	// time phrase → take the lower bound with units
	if m := timeRE.FindStringSubmatch(s); m != nil {
		low, err := strconv.Atoi(m[1])
		if err != nil {
			return cleaned
		}
		return FormatMinutes(phraseMinutes(low, m[3]))
	}

	return cleaned // fallback: already human-readable
}

func isoComponent(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func phraseMinutes(n int, unit string) int {
	if strings.HasPrefix(strings.ToLower(unit), "h") {
		return n * 60
	}
	return n
}

// TimePhraseMinutes returns the minute value of the first time phrase in s
// ("15-20 minutes" → 15, "1 hr" → 60). Ranges contribute their lower bound.
// The second return is false when s contains no time phrase.
func TimePhraseMinutes(s string) (int, bool) {
	m := timeRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	low, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return phraseMinutes(low, m[3]), true
}

// NormalizeYield normalizes yields like "Serves 4", "4 – 6", "Makes 12"
// into "4", "4-6", "12". Input with no digit run is returned cleaned and
// lower-cased; empty input returns "".
func NormalizeYield(raw string) string {
	s := strings.ToLower(Clean(raw))
	if s == "" {
		return ""
	}
	m := yieldRE.FindString(s)
	if m == "" {
		return s
	}
	m = strings.ReplaceAll(m, " ", "")
	// collapse "4-6" style ranges written with an en-dash
	return strings.ReplaceAll(m, "–", "-")
}

// DeriveCookFromSteps sums every time mention across all step strings and
// formats the total, e.g. "Simmer 5 mins" + "Rest 2 mins" → "7 min".
// This is a best-effort approximation: any number followed by a time unit
// counts, so unrelated mentions in step text can inflate the total.
// Returns "" when there are no steps or no time mentions.
func DeriveCookFromSteps(steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	total := 0
	for _, step := range steps {
		for _, m := range timeRE.FindAllStringSubmatch(step, -1) {
			low, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			total += phraseMinutes(low, m[3])
		}
	}
	if total == 0 {
		return ""
	}
	return FormatMinutes(total)
}
