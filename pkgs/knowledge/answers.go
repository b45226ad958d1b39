package knowledge

import (
	"fmt"
	"strings"
)

const fallbackAnswer = "I couldn't find a direct answer to that. Our team can help — reach us at (555) 014-2200 or tap one of the suggestions below."

func pricingLine(p *Product) string {
	parts := make([]string, len(p.Pricing))
	for i, t := range p.Pricing {
		parts[i] = fmt.Sprintf("%s: %s", t.Plan, t.Price)
	}
	return "Plans: " + strings.Join(parts, ", ") + "."
}

func synthesizeAnswer(results []Result, comparison comparisonIntent, pricing bool) string {
	if comparison.Comparing && len(results) >= 2 {
		return renderComparison(results[0], results[1])
	}
	if len(results) == 0 {
		return fallbackAnswer
	}

	top := results[0]
	switch top.Type {
	case TypeFAQ:
		return top.faq.Answer
	case TypeProduct:
		return renderProduct(top.product, pricing)
	case TypeSolution:
		return renderSolution(top.solution)
	case TypeIndustry:
		return renderIndustry(top.industry)
	case TypeCompany:
		return top.company.Description
	default:
		return fallbackAnswer
	}
}

func renderProduct(p *Product, pricing bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s** — %s\n", p.Name, p.Description))
	if pricing && len(p.Pricing) > 0 {
		b.WriteString("\nPricing:\n")
		for _, t := range p.Pricing {
			b.WriteString(fmt.Sprintf("• %s — %s\n", t.Plan, t.Price))
		}
	} else if len(p.Features) > 0 {
		b.WriteString("\nHighlights:\n")
		for _, f := range p.Features {
			b.WriteString(fmt.Sprintf("• %s\n", f))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSolution(s *Solution) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s** — %s\n", s.Name, s.Description))
	if len(s.Benefits) > 0 {
		b.WriteString("\nWhat you get:\n")
		for _, bf := range s.Benefits {
			b.WriteString(fmt.Sprintf("• %s\n", bf))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderIndustry(ind *Industry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("We work with %s organizations every day. %s\n", strings.ToLower(ind.Name), ind.Description))
	if len(ind.Solutions) > 0 {
		b.WriteString(fmt.Sprintf("\nFor %s clients we typically deliver: %s.", strings.ToLower(ind.Name), strings.Join(ind.Solutions, ", ")))
	}
	return b.String()
}

// renderComparison produces a two-column textual comparison of the top two
// results. Which two depends only on the ranking, not on the names the user
// typed; with an empty extracted item list this may not be the pair the user
// intended.
func renderComparison(a, b Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Here's how **%s** and **%s** compare:\n\n", a.Title, b.Title))
	sb.WriteString(fmt.Sprintf("**%s**\n%s\n", a.Title, comparisonColumn(a)))
	sb.WriteString(fmt.Sprintf("\n**%s**\n%s\n", b.Title, comparisonColumn(b)))
	sb.WriteString("\nHappy to walk through which fits your team better.")
	return sb.String()
}

func comparisonColumn(r Result) string {
	switch r.Type {
	case TypeProduct:
		lines := make([]string, 0, len(r.product.Features)+1)
		for _, f := range r.product.Features {
			lines = append(lines, "• "+f)
		}
		lines = append(lines, "• "+pricingLine(r.product))
		return strings.Join(lines, "\n")
	case TypeSolution:
		lines := make([]string, 0, len(r.solution.Benefits))
		for _, bf := range r.solution.Benefits {
			lines = append(lines, "• "+bf)
		}
		return strings.Join(lines, "\n")
	default:
		return "• " + r.Description
	}
}
