package wizard

import "fmt"

// Summary is the static confirmation text for a finished session.
type Summary struct {
	Tier     string   `json:"tier"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Company  string   `json:"company,omitempty"`
	Message  string   `json:"message"`
}

// Summary renders the confirmation for the previously selected tier.
func (s *State) Summary() (Summary, error) {
	if !s.Complete() {
		return Summary{}, ErrNotConfirmed
	}
	tier, ok := LookupTier(s.SelectedTier)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownTier, s.SelectedTier)
	}
	name := s.Answers.Get("name")
	greeting := "Thanks"
	if name != "" {
		greeting = "Thanks, " + name
	}
	return Summary{
		Tier:     tier.Label,
		Price:    tier.Price,
		Features: append([]string(nil), tier.Features...),
		Name:     name,
		Email:    s.Answers.Get("email"),
		Company:  s.Answers.Get("company"),
		Message: fmt.Sprintf("%s! Your application for the %s plan is in. A strategist will confirm your call shortly.",
			greeting, tier.Label),
	}, nil
}
