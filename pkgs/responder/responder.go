package responder

import (
	"regexp"

	"meridianit/inbox-project/pkgs/utils"
)

// Reply is a canned response chosen by the keyword router. AssignAgent marks
// branches where the sender likely wants a human follow-up; the webhook only
// acts on it during business hours.
type Reply struct {
	Text        string
	AssignAgent bool
}

var greetingRe = regexp.MustCompile(`(?i)\b(hi|hello|hey|hola|good morning|good afternoon|good evening)\b`)

const (
	greetingReply = "Hi there! 👋 Welcome to Meridian IT Partners.\n\n" +
		"I can help with:\n" +
		"• Managed IT support plans\n" +
		"• Microsoft 365 & Google Workspace\n" +
		"• Cybersecurity & backup\n" +
		"• Pricing and quotes\n\n" +
		"Just tell me what you're looking for, or type *help* to reach our team."

	pricingReply = "Here's a quick look at our pricing:\n\n" +
		"• Managed IT Support — from $45/user/month\n" +
		"• Cybersecurity Suite — from $18/user/month\n" +
		"• Microsoft 365 — from $6/user/month\n" +
		"• Cloud Backup — from $4/user/month\n\n" +
		"I'm flagging one of our specialists to put together an exact quote for your team."

	microsoftReply = "Great choice — we're a Microsoft partner.\n\n" +
		"Microsoft 365 Business gives you Outlook email, Teams, SharePoint and the Office apps, " +
		"fully set up and managed by us. Plans start at $6/user/month.\n\n" +
		"A specialist will follow up to talk licensing and migration."

	googleReply = "We set up and manage Google Workspace end to end:\n\n" +
		"Gmail on your domain, shared Drives, Meet and device management. " +
		"Plans start at $6/user/month, migration included.\n\n" +
		"A specialist will follow up with the details."

	hoursReply = "Our office is staffed Monday–Friday, 8:00 AM to 6:00 PM.\n\n" +
		"Managed clients have a 24/7 emergency line — if this is urgent, reply *help* and we'll jump on it."

	supportReply = "Sorry you're running into trouble! 🛠\n\n" +
		"I've queued your message for our helpdesk — an engineer will pick this up shortly. " +
		"If you can, describe what's happening and any error message you see."

	defaultReply = "Thanks for reaching out to Meridian IT Partners!\n\n" +
		"You can ask me about our support plans, Microsoft 365, Google Workspace, " +
		"cybersecurity or pricing — or type *help* to reach a person."
)

// Respond routes the message through the keyword rules in fixed priority
// order and returns the first match: greeting, pricing, Microsoft 365,
// Google Workspace, business hours, help/support, then the default.
func Respond(message string) Reply {
	switch {
	case greetingRe.MatchString(message):
		return Reply{Text: greetingReply}
	case utils.StringContains(message, "price", "pricing", "cost", "how much", "quote"):
		return Reply{Text: pricingReply, AssignAgent: true}
	case utils.StringContains(message, "microsoft", "office 365", "m365", "outlook", "sharepoint"):
		return Reply{Text: microsoftReply, AssignAgent: true}
	case utils.StringContains(message, "google workspace", "gmail", "gsuite", "google"):
		return Reply{Text: googleReply, AssignAgent: true}
	case utils.StringContains(message, "hours", "open", "available", "when are you"):
		return Reply{Text: hoursReply}
	case utils.StringContains(message, "help", "support", "problem", "issue", "broken", "not working", "error"):
		return Reply{Text: supportReply, AssignAgent: true}
	default:
		return Reply{Text: defaultReply}
	}
}
