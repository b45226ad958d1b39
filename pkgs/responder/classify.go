package responder

import "meridianit/inbox-project/pkgs/utils"

// Categorize buckets a message for the agent queue. This is a second,
// independent pass over the same text; it does not share rules with Respond.
func Categorize(message string) string {
	switch {
	case utils.StringContains(message, "complaint", "unhappy", "disappointed", "terrible", "refund", "cancel"):
		return "complaint"
	case utils.StringContains(message, "buy", "purchase", "price", "pricing", "quote", "upgrade", "interested"):
		return "sales"
	case utils.StringContains(message, "help", "support", "problem", "issue", "broken", "not working", "error", "down"):
		return "support"
	default:
		return "inquiry"
	}
}
