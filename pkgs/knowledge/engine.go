package knowledge

import (
	"regexp"
	"sort"
	"strings"
)

// Relevance weights. Scores are plain sums with no length normalization;
// a record qualifies only above scoreThreshold.
const (
	exactMatchWeight   = 50.0
	tokenMatchWeight   = 10.0
	keywordMatchWeight = 20.0
	partialMatchWeight = 5.0

	titleWeight       = 1.0
	descriptionWeight = 0.5
	featureWeight     = 0.3

	scoreThreshold = 10.0
	maxResults     = 5
)

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize lowercases, replaces non-word characters with spaces and
// collapses runs of whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// textScore scores a free-text field against the normalized query: the whole
// query as a substring counts high, individual tokens of length >= 3 count
// low. Inputs are pre-normalized.
func textScore(nq string, queryTokens []string, text string) float64 {
	nt := Normalize(text)
	if nt == "" || nq == "" {
		return 0
	}

	var score float64
	if strings.Contains(nt, nq) {
		score += exactMatchWeight
	}
	for _, tok := range queryTokens {
		if len(tok) < 3 {
			continue
		}
		if strings.Contains(nt, tok) {
			score += tokenMatchWeight
		}
	}
	return score
}

// keywordScore scores catalog keywords against the query. A keyword fully
// contained in the query counts as matched; partial containment either way
// earns a smaller bonus. Matching is commutative over keyword order.
func keywordScore(nq string, queryTokens []string, keywords []string) (float64, []string) {
	var (
		score   float64
		matched []string
	)
	for _, kw := range keywords {
		nk := Normalize(kw)
		if nk == "" {
			continue
		}
		if strings.Contains(nq, nk) {
			score += keywordMatchWeight
			matched = append(matched, kw)
			continue
		}
		for _, tok := range queryTokens {
			if len(tok) < 3 {
				continue
			}
			if strings.Contains(nk, tok) || strings.Contains(tok, nk) {
				score += partialMatchWeight
				break
			}
		}
	}
	return score, matched
}

func recordScore(nq string, queryTokens []string, title, description string, extras []string, keywords []string) (float64, []string) {
	score := textScore(nq, queryTokens, title) * titleWeight
	score += textScore(nq, queryTokens, description) * descriptionWeight

	var extraScore float64
	for _, e := range extras {
		extraScore += textScore(nq, queryTokens, e)
	}
	score += extraScore * featureWeight

	kwScore, matched := keywordScore(nq, queryTokens, keywords)
	return score + kwScore, matched
}

type Result struct {
	Type            RecordType `json:"type"`
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Score           float64    `json:"score"`
	MatchedKeywords []string   `json:"matchedKeywords,omitempty"`

	product  *Product
	solution *Solution
	industry *Industry
	faq      *FAQ
	company  *CompanyFact
}

type QuickAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

type Response struct {
	Answer       string        `json:"answer"`
	Results      []Result      `json:"results"`
	Suggestions  []string      `json:"suggestions"`
	QuickActions []QuickAction `json:"quickActions"`
}

// Query scores the free-text query against every catalog and synthesizes an
// answer from the ranked results. It never fails: an unmatched query yields
// the fallback answer.
func Query(query string) Response {
	nq := Normalize(query)
	queryTokens := tokens(nq)

	pricing := hasPricingIntent(nq)
	comparison := detectComparison(nq)

	// Catalog priority order is the tie-break: FAQ, product, solution,
	// company, industry. The sort below is stable.
	var results []Result

	for i := range faqs {
		f := &faqs[i]
		score, matched := recordScore(nq, queryTokens, f.Question, f.Answer, nil, f.Keywords)
		if score > scoreThreshold {
			results = append(results, Result{
				Type: TypeFAQ, ID: f.ID, Title: f.Question, Description: f.Answer,
				Score: score, MatchedKeywords: matched, faq: f,
			})
		}
	}
	for i := range products {
		p := &products[i]
		score, matched := recordScore(nq, queryTokens, p.Name, p.Description, p.Features, p.Keywords)
		if score > scoreThreshold {
			desc := p.Description
			if pricing {
				desc += " " + pricingLine(p)
			}
			results = append(results, Result{
				Type: TypeProduct, ID: p.ID, Title: p.Name, Description: desc,
				Score: score, MatchedKeywords: matched, product: p,
			})
		}
	}
	for i := range solutions {
		s := &solutions[i]
		score, matched := recordScore(nq, queryTokens, s.Name, s.Description, s.Benefits, s.Keywords)
		if score > scoreThreshold {
			results = append(results, Result{
				Type: TypeSolution, ID: s.ID, Title: s.Name, Description: s.Description,
				Score: score, MatchedKeywords: matched, solution: s,
			})
		}
	}
	for i := range companyFacts {
		c := &companyFacts[i]
		score, matched := recordScore(nq, queryTokens, c.Topic, c.Description, nil, c.Keywords)
		if score > scoreThreshold {
			results = append(results, Result{
				Type: TypeCompany, ID: c.ID, Title: c.Topic, Description: c.Description,
				Score: score, MatchedKeywords: matched, company: c,
			})
		}
	}
	for i := range industries {
		ind := &industries[i]
		score, matched := recordScore(nq, queryTokens, ind.Name, ind.Description, ind.Solutions, ind.Keywords)
		if score > scoreThreshold {
			results = append(results, Result{
				Type: TypeIndustry, ID: ind.ID, Title: ind.Name, Description: ind.Description,
				Score: score, MatchedKeywords: matched, industry: ind,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	answer := synthesizeAnswer(results, comparison, pricing)

	return Response{
		Answer:       answer,
		Results:      results,
		Suggestions:  suggestionsFor(results, pricing),
		QuickActions: quickActionsFor(results, pricing),
	}
}
