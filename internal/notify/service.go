package notify

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/wolfman30/leadgen-site/internal/leads"
	"github.com/wolfman30/leadgen-site/internal/wizard"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// LeadNotifier emails the sales inbox when an application is captured.
type LeadNotifier struct {
	sender  EmailSender
	salesTo string
	logger  *logging.Logger
}

// NewLeadNotifier returns nil when there is nowhere to send to.
func NewLeadNotifier(sender EmailSender, salesTo string, logger *logging.Logger) *LeadNotifier {
	if sender == nil || strings.TrimSpace(salesTo) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadNotifier{sender: sender, salesTo: strings.TrimSpace(salesTo), logger: logger}
}

// LeadCaptured implements leads.Notifier.
func (n *LeadNotifier) LeadCaptured(ctx context.Context, lead *leads.Lead) error {
	if n == nil || lead == nil {
		return nil
	}
	msg := BuildLeadEmail(n.salesTo, lead)
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead %s: %w", lead.ID, err)
	}
	n.logger.Info("lead notification sent", "lead_id", lead.ID, "tier", lead.Tier)
	return nil
}

// BuildLeadEmail renders the sales notification for a captured lead.
func BuildLeadEmail(to string, lead *leads.Lead) EmailMessage {
	company := lead.Company
	if company == "" {
		company = lead.Name
	}
	subject := fmt.Sprintf("New %s application: %s", lead.Tier, company)

	var text, markup strings.Builder
	fmt.Fprintf(&text, "A new %s application was submitted.\n\n", lead.Tier)
	markup.WriteString("<h2>New application</h2>\n<table>\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&text, "%s: %s\n", label, value)
		fmt.Fprintf(&markup, "<tr><th align=\"left\">%s</th><td>%s</td></tr>\n", html.EscapeString(label), html.EscapeString(value))
	}

	row("Tier", lead.Tier)
	row("Name", lead.Name)
	row("Email", lead.Email)
	row("Company", lead.Company)
	row("Phone", lead.Phone)

	for _, key := range answerKeys(lead.Answers) {
		row(fieldLabel(key), lead.Answers[key])
	}
	if !lead.CreatedAt.IsZero() {
		row("Submitted", lead.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	markup.WriteString("</table>\n")

	return EmailMessage{
		To:      to,
		Subject: subject,
		Body:    text.String(),
		HTML:    markup.String(),
	}
}

// answerKeys lists the free-form answers not already shown as contact rows,
// qualification fields first.
func answerKeys(answers map[string]string) []string {
	contact := map[string]bool{"name": true, "email": true, "company": true, "phone": true, "tier": true}
	order := make(map[string]int)
	for i, f := range wizard.RequiredFields(wizard.StepQualification) {
		order[f] = i + 1
	}
	keys := make([]string, 0, len(answers))
	for k, v := range answers {
		if contact[k] || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := order[keys[i]], order[keys[j]]
		switch {
		case oi != 0 && oj != 0:
			return oi < oj
		case oi != 0:
			return true
		case oj != 0:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

func fieldLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
