package knowledge

import (
	"regexp"
	"strings"
)

var pricingKeywords = []string{
	"price", "pricing", "cost", "how much", "expensive", "cheap", "fee", "quote",
}

func hasPricingIntent(normalizedQuery string) bool {
	for _, kw := range pricingKeywords {
		if strings.Contains(normalizedQuery, kw) {
			return true
		}
	}
	return false
}

// comparePairRe captures the word before and after the comparator; an
// intervening plan number ("365", "2024") is skipped so "microsoft 365 vs
// google workspace" yields microsoft/google rather than 365/google.
var comparePairRe = regexp.MustCompile(`([a-z]+)(?: \d+)? (?:vs|versus) ([a-z]+)`)

var comparisonKeywords = []string{" vs ", "versus", "compare", "comparison", "difference between", "better than"}

type comparisonIntent struct {
	Comparing bool
	Items     []string
}

// detectComparison looks for an "X vs Y" shape in the normalized query. A
// comparison keyword without two extractable names still sets Comparing with
// an empty item list; the answer then falls back to the top 2 ranked results.
func detectComparison(normalizedQuery string) comparisonIntent {
	if m := comparePairRe.FindStringSubmatch(normalizedQuery); m != nil {
		return comparisonIntent{Comparing: true, Items: []string{m[1], m[2]}}
	}
	for _, kw := range comparisonKeywords {
		if strings.Contains(normalizedQuery, kw) {
			return comparisonIntent{Comparing: true}
		}
	}
	return comparisonIntent{}
}
