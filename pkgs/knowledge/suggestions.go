package knowledge

// Fixed decision tables keyed off the top result's type and the pricing
// flag. Independent of relevance scoring.

var fallbackSuggestions = []string{
	"What's included in Managed IT Support?",
	"How much does Microsoft 365 cost?",
	"Do you work with businesses like mine?",
}

func suggestionsFor(results []Result, pricing bool) []string {
	if len(results) == 0 {
		return fallbackSuggestions
	}

	switch results[0].Type {
	case TypeProduct:
		if pricing {
			return []string{
				"Is there a discount for annual billing?",
				"What does onboarding look like?",
				"Can I mix plans across my team?",
			}
		}
		return []string{
			"How much does it cost?",
			"How long does setup take?",
			"What support is included?",
		}
	case TypeSolution:
		return []string{
			"How long does a typical project take?",
			"What does it cost?",
			"Can we start with an assessment?",
		}
	case TypeIndustry:
		return []string{
			"What compliance frameworks do you cover?",
			"Can you share a case study?",
			"How fast do you respond to issues?",
		}
	case TypeCompany:
		return []string{
			"What services do you offer?",
			"Do you require long-term contracts?",
			"How do I get a quote?",
		}
	default: // FAQ
		return []string{
			"How does your pricing work?",
			"What does onboarding look like?",
			"How do I contact the helpdesk?",
		}
	}
}

func quickActionsFor(results []Result, pricing bool) []QuickAction {
	actions := []QuickAction{
		{Label: "Message us on WhatsApp", Action: "open_whatsapp"},
	}

	if pricing {
		actions = append(actions, QuickAction{Label: "Get a quote", Action: "request_quote"})
	}

	if len(results) == 0 {
		return append(actions, QuickAction{Label: "Talk to a human", Action: "contact_sales"})
	}

	switch results[0].Type {
	case TypeProduct, TypeSolution:
		actions = append(actions,
			QuickAction{Label: "Book a free assessment", Action: "book_assessment"},
			QuickAction{Label: "Talk to sales", Action: "contact_sales"},
		)
	case TypeIndustry:
		actions = append(actions, QuickAction{Label: "See case studies", Action: "view_case_studies"})
	default:
		actions = append(actions, QuickAction{Label: "Contact support", Action: "contact_support"})
	}
	return actions
}
