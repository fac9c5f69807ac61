package faq

// Record is one pre-written question/answer pair.
type Record struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"answer" yaml:"answer"`
	Keywords []string `json:"-" yaml:"keywords"`
}

// records is the full script. Order is display order; there is no ranking.
var records = []Record{
	{
		ID:       "how-it-works",
		Category: "Getting started",
		Question: "How does your lead generation service work?",
		Answer:   "We build a target account list with you, write and run outbound campaigns across email and LinkedIn, and book qualified meetings straight onto your sales team's calendar.",
		Keywords: []string{"how does", "how it works", "process"},
	},
	{
		ID:       "first-results",
		Category: "Getting started",
		Question: "How quickly will I see results?",
		Answer:   "Most clients see their first booked meetings within 3-4 weeks. The first two weeks go to research, list building, and copy approval.",
		Keywords: []string{"how quickly", "how long", "results", "first meeting"},
	},
	{
		ID:       "onboarding",
		Category: "Getting started",
		Question: "What does onboarding involve?",
		Answer:   "A 60-minute kickoff call covering your ideal customer profile, offer, and objections, followed by asynchronous review of targeting and messaging.",
		Keywords: []string{"onboard", "kickoff", "setup"},
	},
	{
		ID:       "industries",
		Category: "Fit",
		Question: "Which industries do you work with?",
		Answer:   "We focus on B2B: SaaS, IT services, professional services, manufacturing, and logistics. We do not run consumer campaigns.",
		Keywords: []string{"industry", "industries", "saas", "vertical"},
	},
	{
		ID:       "company-size",
		Category: "Fit",
		Question: "Is this a fit for small companies?",
		Answer:   "Yes. The Starter plan is built for teams validating a new market; most Starter clients have fewer than 50 employees.",
		Keywords: []string{"small", "startup", "company size"},
	},
	{
		ID:       "pricing",
		Category: "Pricing",
		Question: "How much does it cost?",
		Answer:   "Starter is $2,500/mo, Growth is $5,000/mo, and Enterprise is priced to scope. There are no setup fees.",
		Keywords: []string{"price", "pricing", "cost", "how much", "fee"},
	},
	{
		ID:       "contract",
		Category: "Pricing",
		Question: "Is there a long-term contract?",
		Answer:   "Plans run month to month after an initial 90-day term, which is how long campaigns need to reach a steady state.",
		Keywords: []string{"contract", "commitment", "cancel", "term"},
	},
	{
		ID:       "guarantee",
		Category: "Pricing",
		Question: "Do you offer a performance guarantee?",
		Answer:   "Growth and Enterprise include a meeting guarantee: if we miss the agreed monthly meeting target, the next month is discounted pro rata.",
		Keywords: []string{"guarantee", "refund", "money back"},
	},
	{
		ID:       "lead-quality",
		Category: "Results",
		Question: "How do you make sure leads are qualified?",
		Answer:   "Every meeting must match the qualification criteria agreed at kickoff (title, company size, region, and stated need) before it is booked.",
		Keywords: []string{"qualified", "quality", "qualify", "bant"},
	},
	{
		ID:       "meeting-volume",
		Category: "Results",
		Question: "How many meetings can I expect per month?",
		Answer:   "It depends on market size and offer, but Growth clients average 12-20 qualified meetings a month once campaigns stabilize.",
		Keywords: []string{"how many", "meetings per", "volume"},
	},
	{
		ID:       "reporting",
		Category: "Results",
		Question: "What reporting do I get?",
		Answer:   "A live dashboard of sends, replies, and meetings, plus a written monthly report with recommendations.",
		Keywords: []string{"report", "dashboard", "analytics", "metrics"},
	},
	{
		ID:       "channels",
		Category: "Campaigns",
		Question: "Which outreach channels do you use?",
		Answer:   "Email and LinkedIn on every plan above Starter. Enterprise can add cold calling and direct mail.",
		Keywords: []string{"channel", "linkedin", "cold call", "email"},
	},
	{
		ID:       "messaging-approval",
		Category: "Campaigns",
		Question: "Do I approve the messaging before it goes out?",
		Answer:   "Yes. Nothing is sent until you approve the sequence copy and the first batch of target accounts.",
		Keywords: []string{"approve", "approval", "copy", "messaging"},
	},
	{
		ID:       "domains",
		Category: "Campaigns",
		Question: "Will you send from my domain?",
		Answer:   "We set up and warm dedicated sending domains so your primary domain's reputation is never at risk.",
		Keywords: []string{"domain", "deliverability", "spam", "inbox"},
	},
	{
		ID:       "crm",
		Category: "Integrations",
		Question: "Can you integrate with our CRM?",
		Answer:   "Enterprise includes native HubSpot and Salesforce sync. Other plans receive a weekly CSV export.",
		Keywords: []string{"crm", "hubspot", "salesforce", "integrat"},
	},
	{
		ID:       "calendar",
		Category: "Integrations",
		Question: "How are meetings booked onto our calendar?",
		Answer:   "We book through your scheduling link or directly on shared calendars, with the prospect's context attached to the invite.",
		Keywords: []string{"calendar", "booking", "schedule"},
	},
	{
		ID:       "gdpr",
		Category: "Compliance",
		Question: "Is your outreach GDPR and privacy compliant?",
		Answer:   "Yes. We rely on legitimate interest for B2B outreach in the EU and UK, honor opt-outs immediately, and process contact data under a signed DPA.",
		Keywords: []string{"gdpr", "privacy", "compliance", "compliant", "data protection", "dpa"},
	},
	{
		ID:       "can-spam",
		Category: "Compliance",
		Question: "Do you follow CAN-SPAM rules?",
		Answer:   "Every email includes a physical address and a working unsubscribe link, and opt-outs are suppressed across all campaigns.",
		Keywords: []string{"can-spam", "canspam", "unsubscribe", "opt out", "opt-out"},
	},
	{
		ID:       "data-sources",
		Category: "Compliance",
		Question: "Where does your contact data come from?",
		Answer:   "We combine licensed B2B data providers with manual research and verify every email address before sending.",
		Keywords: []string{"data source", "where does", "contact data", "list"},
	},
	{
		ID:       "talk-to-someone",
		Category: "Contact",
		Question: "Can I talk to someone on your team?",
		Answer:   "Of course. Complete the short application and pick a time on the calendar step; a strategist will join the call.",
		Keywords: []string{"talk", "speak", "human", "call me", "contact"},
	},
}
