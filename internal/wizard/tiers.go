package wizard

import "strings"

// Tier is one of the three fixed service packages. Everything but Label is display text.
type Tier struct {
	Label       string   `json:"label"`
	Headline    string   `json:"headline"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
	Recommended bool     `json:"recommended,omitempty"`
}

var tiers = []Tier{
	{
		Label:    "Starter",
		Headline: "Validate your market with a steady trickle of qualified meetings",
		Price:    "$2,500/mo",
		Features: []string{
			"1 outbound channel",
			"Up to 500 verified prospects per month",
			"Monthly performance report",
		},
	},
	{
		Label:    "Growth",
		Headline: "Multi-channel outreach for teams ready to scale pipeline",
		Price:    "$5,000/mo",
		Features: []string{
			"Email and LinkedIn sequences",
			"Up to 2,000 verified prospects per month",
			"Dedicated campaign manager",
			"Bi-weekly strategy calls",
		},
		Recommended: true,
	},
	{
		Label:    "Enterprise",
		Headline: "A fully managed SDR function with custom targeting",
		Price:    "Custom",
		Features: []string{
			"Unlimited channels and prospects",
			"Account-based campaigns",
			"CRM integration and weekly reporting",
			"Named account strategist",
		},
	},
}

// Tiers returns the fixed tier catalog in display order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// LookupTier finds a tier by label, ignoring case and surrounding space.
func LookupTier(label string) (Tier, bool) {
	label = strings.TrimSpace(label)
	for _, t := range tiers {
		if strings.EqualFold(t.Label, label) {
			return t, true
		}
	}
	return Tier{}, false
}
