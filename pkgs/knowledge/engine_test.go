package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hello world 365", Normalize("  Hello, WORLD!! 365 "))
	assert.Equal(t, "", Normalize("!!! ???"))
	assert.Equal(t, "what s included", Normalize("What's included?"))
}

func TestQueryProductLookup(t *testing.T) {
	resp := Query("Tell me about Microsoft 365")

	if assert.NotEmpty(t, resp.Results) {
		assert.Equal(t, "microsoft-365", resp.Results[0].ID)
		assert.Equal(t, TypeProduct, resp.Results[0].Type)
		assert.Contains(t, resp.Results[0].MatchedKeywords, "microsoft")
	}
	assert.Contains(t, resp.Answer, "Microsoft 365 Business")
}

func TestQueryPricingIntent(t *testing.T) {
	resp := Query("How much does Microsoft 365 cost?")

	var product *Result
	for i := range resp.Results {
		if resp.Results[i].ID == "microsoft-365" {
			product = &resp.Results[i]
			break
		}
	}
	if assert.NotNil(t, product, "expected microsoft-365 in results") {
		// Pricing intent appends the plan summary to the description.
		assert.Contains(t, product.Description, "$6/user/month")
	}

	var actions []string
	for _, a := range resp.QuickActions {
		actions = append(actions, a.Action)
	}
	assert.Contains(t, actions, "request_quote")
}

func TestQueryComparison(t *testing.T) {
	resp := Query("Microsoft 365 vs Google Workspace")

	if assert.GreaterOrEqual(t, len(resp.Results), 2) {
		top := []string{resp.Results[0].ID, resp.Results[1].ID}
		assert.Contains(t, top, "microsoft-365")
		assert.Contains(t, top, "google-workspace")
	}
	assert.Contains(t, resp.Answer, "Microsoft 365 Business")
	assert.Contains(t, resp.Answer, "Google Workspace")
}

func TestDetectComparisonSkipsPlanNumber(t *testing.T) {
	intent := detectComparison("microsoft 365 vs google workspace")

	assert.True(t, intent.Comparing)
	assert.Equal(t, []string{"microsoft", "google"}, intent.Items)
}

func TestDetectComparisonKeywordOnly(t *testing.T) {
	intent := detectComparison("what is the difference between your plans")

	assert.True(t, intent.Comparing)
	assert.Empty(t, intent.Items)
}

func TestQueryFallback(t *testing.T) {
	resp := Query("xyzzy plugh")

	assert.Empty(t, resp.Results)
	assert.Equal(t, fallbackAnswer, resp.Answer)
	assert.Equal(t, fallbackSuggestions, resp.Suggestions)

	var actions []string
	for _, a := range resp.QuickActions {
		actions = append(actions, a.Action)
	}
	assert.Contains(t, actions, "contact_sales")
}

func TestQueryCapsResults(t *testing.T) {
	resp := Query("managed it support security cloud backup network email microsoft google")

	assert.LessOrEqual(t, len(resp.Results), maxResults)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].Score, resp.Results[i].Score,
			"results must be sorted by score descending")
	}
}

func TestQueryDeterministic(t *testing.T) {
	first := Query("cybersecurity for healthcare")
	second := Query("cybersecurity for healthcare")

	assert.Equal(t, first, second)
}

func TestKeywordScoreCommutative(t *testing.T) {
	nq := "do you offer cloud backup"
	toks := tokens(nq)

	forward, _ := keywordScore(nq, toks, []string{"cloud", "backup", "recovery"})
	reversed, _ := keywordScore(nq, toks, []string{"recovery", "backup", "cloud"})

	assert.Equal(t, forward, reversed)
}

func TestQueryThreshold(t *testing.T) {
	// Tokens shorter than three characters are ignored entirely.
	resp := Query("a an of to")

	assert.Empty(t, resp.Results)
	assert.Equal(t, fallbackAnswer, resp.Answer)
}

func TestPopularQuestionsNotEmpty(t *testing.T) {
	qs := PopularQuestions()

	assert.NotEmpty(t, qs)
	for _, q := range qs {
		resp := Query(q)
		assert.NotEmpty(t, resp.Results, "popular question %q should match the catalog", q)
	}
}
