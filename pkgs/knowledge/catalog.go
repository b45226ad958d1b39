package knowledge

import (
	"meridianit/inbox-project/pkgs/utils"
)

// The knowledge base is static: loaded from source at process start,
// read-only afterwards. The chatbot widget queries it over HTTP; the WhatsApp
// responder deliberately does not (separate product, see pkgs/responder).

type RecordType string

const (
	TypeFAQ      RecordType = "faq"
	TypeProduct  RecordType = "product"
	TypeSolution RecordType = "solution"
	TypeCompany  RecordType = "company"
	TypeIndustry RecordType = "industry"
)

type PricingTier struct {
	Plan  string `json:"plan" validate:"required"`
	Price string `json:"price" validate:"required"`
}

type Product struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Features    []string      `json:"features"`
	Pricing     []PricingTier `json:"pricing"`
	Keywords    []string      `json:"keywords" validate:"required,min=1"`
}

type Solution struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Benefits    []string `json:"benefits"`
	Keywords    []string `json:"keywords" validate:"required,min=1"`
}

type Industry struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Solutions   []string `json:"solutions"`
	Keywords    []string `json:"keywords" validate:"required,min=1"`
}

type FAQ struct {
	ID       string   `json:"id" validate:"required"`
	Question string   `json:"question" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Keywords []string `json:"keywords" validate:"required,min=1"`
}

type CompanyFact struct {
	ID          string   `json:"id" validate:"required"`
	Topic       string   `json:"topic" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Keywords    []string `json:"keywords" validate:"required,min=1"`
}

var products = []Product{
	{
		ID:          "microsoft-365",
		Name:        "Microsoft 365 Business",
		Description: "Licensing, migration and day-to-day management of Microsoft 365: Exchange Online, Teams, SharePoint, OneDrive and the Office desktop apps, fully administered by our team.",
		Features: []string{
			"Business-class email with a 50 GB mailbox per user",
			"Teams chat, meetings and phone integration",
			"1 TB OneDrive storage per user",
			"Security baseline and conditional access configured for you",
		},
		Pricing: []PricingTier{
			{Plan: "Business Basic", Price: "$6/user/month"},
			{Plan: "Business Standard", Price: "$12.50/user/month"},
			{Plan: "Business Premium", Price: "$22/user/month"},
		},
		Keywords: []string{"microsoft", "office", "365", "outlook", "teams", "exchange", "sharepoint", "onedrive"},
	},
	{
		ID:          "google-workspace",
		Name:        "Google Workspace",
		Description: "Setup, migration and managed administration of Google Workspace: Gmail on your domain, Drive, Meet, Calendar and the Google editors, with our helpdesk behind it.",
		Features: []string{
			"Gmail with your company domain",
			"Shared Drives with granular access control",
			"Meet video conferencing with recording",
			"Endpoint management for company devices",
		},
		Pricing: []PricingTier{
			{Plan: "Business Starter", Price: "$6/user/month"},
			{Plan: "Business Standard", Price: "$12/user/month"},
			{Plan: "Business Plus", Price: "$18/user/month"},
		},
		Keywords: []string{"google", "workspace", "gmail", "drive", "meet", "gsuite"},
	},
	{
		ID:          "managed-it",
		Name:        "Managed IT Support",
		Description: "Our flagship plan: unlimited remote helpdesk, proactive monitoring, patching and vendor management for your whole environment at a flat per-user rate.",
		Features: []string{
			"Unlimited remote helpdesk, 15-minute response SLA",
			"24/7 monitoring of servers, endpoints and network",
			"Automated patch management and reporting",
			"Quarterly technology business reviews",
		},
		Pricing: []PricingTier{
			{Plan: "Essential", Price: "$45/user/month"},
			{Plan: "Complete", Price: "$75/user/month"},
			{Plan: "Complete + Security", Price: "$95/user/month"},
		},
		Keywords: []string{"managed", "support", "helpdesk", "msp", "monitoring", "it support"},
	},
	{
		ID:          "cybersecurity",
		Name:        "Cybersecurity Suite",
		Description: "Layered protection for small business: managed EDR, email filtering, security awareness training and dark-web monitoring, run from our security operations desk.",
		Features: []string{
			"Managed endpoint detection and response",
			"Phishing simulation and awareness training",
			"Multi-factor authentication rollout",
			"Dark-web credential monitoring",
		},
		Pricing: []PricingTier{
			{Plan: "Core", Price: "$18/user/month"},
			{Plan: "Advanced", Price: "$32/user/month"},
		},
		Keywords: []string{"security", "cybersecurity", "antivirus", "phishing", "ransomware", "edr", "mfa"},
	},
	{
		ID:          "cloud-backup",
		Name:        "Cloud Backup & Recovery",
		Description: "Automated, encrypted backup of servers, workstations and Microsoft 365/Google Workspace data with tested restores and a documented recovery time objective.",
		Features: []string{
			"Hourly incremental backups with versioning",
			"SaaS backup for mail, drives and sites",
			"Annual disaster-recovery test with report",
		},
		Pricing: []PricingTier{
			{Plan: "Workstation", Price: "$12/device/month"},
			{Plan: "Server", Price: "$79/server/month"},
			{Plan: "SaaS", Price: "$4/user/month"},
		},
		Keywords: []string{"backup", "recovery", "restore", "disaster", "data loss"},
	},
}

var solutions = []Solution{
	{
		ID:          "cloud-migration",
		Name:        "Cloud Migration",
		Description: "Planned, low-downtime moves of email, files and line-of-business workloads into Microsoft 365, Google Workspace or Azure, with user training included.",
		Benefits: []string{
			"Fixed-price migration plan with rollback points",
			"Mail and file cutover scheduled outside business hours",
			"Post-migration hypercare for two weeks",
		},
		Keywords: []string{"migration", "cloud", "move", "azure", "cutover"},
	},
	{
		ID:          "network-security",
		Name:        "Network & Firewall Management",
		Description: "Design, deployment and ongoing management of business networks: next-gen firewalls, segmented Wi-Fi, VPN access and configuration backups.",
		Benefits: []string{
			"Managed next-gen firewall with monthly rule review",
			"Separate guest and IoT network segments",
			"Site-to-site and remote-worker VPN",
		},
		Keywords: []string{"network", "firewall", "wifi", "vpn", "router"},
	},
	{
		ID:          "it-assessment",
		Name:        "IT Assessment",
		Description: "A fixed-scope audit of your environment covering security posture, asset inventory, backup health and license spend, delivered as a prioritized roadmap.",
		Benefits: []string{
			"Full asset and license inventory",
			"Security posture score with quick wins",
			"Budget roadmap for the next 24 months",
		},
		Keywords: []string{"assessment", "audit", "review", "roadmap", "health check"},
	},
	{
		ID:          "business-continuity",
		Name:        "Business Continuity Planning",
		Description: "Recovery objectives, documented runbooks and tested failover so a ransomware event or office outage does not stop the business.",
		Benefits: []string{
			"Documented RTO/RPO per system",
			"Tabletop exercise with your leadership team",
			"Annual failover test",
		},
		Keywords: []string{"continuity", "disaster recovery", "outage", "failover", "ransomware"},
	},
}

var industries = []Industry{
	{
		ID:          "healthcare",
		Name:        "Healthcare",
		Description: "IT for clinics and practices where HIPAA compliance, EHR uptime and patient data protection are non-negotiable.",
		Solutions:   []string{"Cybersecurity Suite", "Cloud Backup & Recovery", "IT Assessment"},
		Keywords:    []string{"healthcare", "clinic", "medical", "hipaa", "patient", "ehr"},
	},
	{
		ID:          "legal",
		Name:        "Legal",
		Description: "Document management, matter confidentiality and always-available email for law firms of 5 to 200 attorneys.",
		Solutions:   []string{"Managed IT Support", "Cloud Migration", "Business Continuity Planning"},
		Keywords:    []string{"legal", "law", "firm", "attorney", "lawyer"},
	},
	{
		ID:          "finance",
		Name:        "Financial Services",
		Description: "Layered security, audit trails and regulator-ready reporting for accounting firms, advisors and lenders.",
		Solutions:   []string{"Cybersecurity Suite", "IT Assessment", "Network & Firewall Management"},
		Keywords:    []string{"finance", "accounting", "cpa", "advisor", "bank", "compliance"},
	},
	{
		ID:          "manufacturing",
		Name:        "Manufacturing",
		Description: "Shop-floor networks, OT segmentation and ERP support that keep production lines and logistics moving.",
		Solutions:   []string{"Network & Firewall Management", "Managed IT Support", "Cloud Backup & Recovery"},
		Keywords:    []string{"manufacturing", "factory", "plant", "erp", "warehouse"},
	},
	{
		ID:          "retail",
		Name:        "Retail",
		Description: "POS reliability, PCI-scoped networks and multi-site support for retail and hospitality businesses.",
		Solutions:   []string{"Network & Firewall Management", "Managed IT Support"},
		Keywords:    []string{"retail", "store", "pos", "shop", "hospitality"},
	},
}

var faqs = []FAQ{
	{
		ID:       "response-time",
		Question: "How fast do you respond to support requests?",
		Answer:   "Critical issues get a 15-minute response around the clock. Standard requests are answered within one business hour, and most are resolved on the first call.",
		Keywords: []string{"response", "sla", "fast", "how long", "urgent"},
	},
	{
		ID:       "onboarding",
		Question: "What does onboarding look like?",
		Answer:   "Onboarding takes two to three weeks: we inventory your environment, deploy our monitoring and security agents, document everything and introduce your team to the helpdesk. There is no disruption to daily work.",
		Keywords: []string{"onboarding", "start", "switch", "getting started", "setup"},
	},
	{
		ID:       "contract",
		Question: "Do you require long-term contracts?",
		Answer:   "Managed plans are month-to-month after an initial three-month term. Project work is fixed-price with no ongoing commitment.",
		Keywords: []string{"contract", "term", "commitment", "cancel", "lock in"},
	},
	{
		ID:       "data-security",
		Question: "How do you keep our data secure?",
		Answer:   "All remote access is audited and MFA-protected, backups are encrypted at rest and in transit, and our own operations are covered by the same security stack we sell. We hold SOC 2 Type II attestation.",
		Keywords: []string{"secure", "privacy", "encryption", "soc 2", "data"},
	},
	{
		ID:       "migration-downtime",
		Question: "Will migrating to the cloud cause downtime?",
		Answer:   "Mail and file cutovers are scheduled outside business hours; users typically notice nothing beyond a password prompt on Monday morning. A rollback point is kept until the migration is signed off.",
		Keywords: []string{"downtime", "migration", "disruption", "cutover"},
	},
	{
		ID:       "pricing-model",
		Question: "How does your pricing work?",
		Answer:   "Managed services are a flat per-user monthly rate that includes unlimited support. Projects are quoted fixed-price up front. There are no hourly surprises.",
		Keywords: []string{"pricing", "price", "cost", "how much", "billing"},
	},
	{
		ID:       "remote-onsite",
		Question: "Do you provide on-site support?",
		Answer:   "Most issues are resolved remotely within minutes. When hands-on work is needed, an engineer is dispatched to your office; on-site visits are included in the Complete plan.",
		Keywords: []string{"onsite", "on-site", "visit", "remote", "in person"},
	},
	{
		ID:       "small-business",
		Question: "Do you work with small businesses?",
		Answer:   "Yes — our sweet spot is 10 to 250 employees. Smaller teams usually start with the Essential plan plus the Cybersecurity Core bundle.",
		Keywords: []string{"small business", "small", "startup", "employees", "team size"},
	},
}

var companyFacts = []CompanyFact{
	{
		ID:          "about",
		Topic:       "About Meridian IT",
		Description: "Meridian IT Partners has provided managed IT services since 2011. A team of 40 engineers supports more than 300 businesses across the region from our network operations center.",
		Keywords:    []string{"about", "company", "who", "history", "team"},
	},
	{
		ID:          "contact",
		Topic:       "Contact",
		Description: "Reach us at (555) 014-2200, support@meridianitpartners.com, or message us on WhatsApp — the fastest way to reach the helpdesk.",
		Keywords:    []string{"contact", "phone", "email", "reach", "call", "whatsapp"},
	},
	{
		ID:          "hours",
		Topic:       "Business Hours",
		Description: "Our office is staffed Monday through Friday, 8:00 AM to 6:00 PM. The emergency line and monitoring desk operate 24/7 for managed clients.",
		Keywords:    []string{"hours", "open", "available", "when", "weekend"},
	},
	{
		ID:          "location",
		Topic:       "Location",
		Description: "Headquarters at 1200 Commerce Parkway, Suite 400, with field engineers covering the entire metro area.",
		Keywords:    []string{"location", "address", "where", "office"},
	},
}

var popularQuestions = []string{
	"How much does managed IT support cost?",
	"What's included in the Cybersecurity Suite?",
	"Microsoft 365 vs Google Workspace — which should we pick?",
	"How fast do you respond to support requests?",
	"Do you work with healthcare practices?",
}

func init() {
	for _, p := range products {
		mustValidate(p)
	}
	for _, s := range solutions {
		mustValidate(s)
	}
	for _, i := range industries {
		mustValidate(i)
	}
	for _, f := range faqs {
		mustValidate(f)
	}
	for _, c := range companyFacts {
		mustValidate(c)
	}
}

func mustValidate(v any) {
	if err := utils.Validate.Struct(v); err != nil {
		panic(err)
	}
}

// ProductByID returns the catalog product with the given ID.
func ProductByID(id string) (*Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}
	return nil, false
}

// SolutionByID returns the catalog solution with the given ID.
func SolutionByID(id string) (*Solution, bool) {
	for i := range solutions {
		if solutions[i].ID == id {
			return &solutions[i], true
		}
	}
	return nil, false
}

// PopularQuestions returns the fixed starter prompts shown by the chat widget.
func PopularQuestions() []string {
	out := make([]string, len(popularQuestions))
	copy(out, popularQuestions)
	return out
}
