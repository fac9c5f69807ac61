package wizard

import (
	"strings"
	"time"
)

// Step is one of the fixed wizard step labels.
type Step string

const (
	StepQualification Step = "qualification"
	StepTier          Step = "tier"
	StepApplication   Step = "application"
	StepCalendar      Step = "calendar"
	StepConfirmation  Step = "confirmation"
)

// Steps is the forward order of the wizard.
var Steps = []Step{
	StepQualification,
	StepTier,
	StepApplication,
	StepCalendar,
	StepConfirmation,
}

// ParseStep maps a label to its Step.
func ParseStep(label string) (Step, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, s := range Steps {
		if string(s) == label {
			return s, nil
		}
	}
	return "", ErrUnknownStep
}

// Index returns the step's position in Steps, or -1.
func (s Step) Index() int {
	for i, candidate := range Steps {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the following step. Confirmation has no successor.
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i >= len(Steps)-1 {
		return s, false
	}
	return Steps[i+1], true
}

// Answers is the flat field-name to free-text record collected across steps.
type Answers map[string]string

// Get returns the trimmed value for a field.
func (a Answers) Get(field string) string {
	return strings.TrimSpace(a[field])
}

// requiredFields mirrors the HTML required attributes on each step's form.
var requiredFields = map[Step][]string{
	StepQualification: {"company_size", "challenge", "timeline"},
	StepApplication:   {"name", "email", "company"},
}

// RequiredFields lists the fields a step's form marks as required.
func RequiredFields(step Step) []string {
	return append([]string(nil), requiredFields[step]...)
}

// State is a visitor's transient wizard session.
type State struct {
	SessionID    string    `json:"session_id"`
	CurrentStep  Step      `json:"current_step"`
	SelectedTier string    `json:"selected_tier,omitempty"`
	Answers      Answers   `json:"answers"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewState starts a session at the qualification step.
func NewState(sessionID string, now time.Time) *State {
	return &State{
		SessionID:   sessionID,
		CurrentStep: StepQualification,
		Answers:     Answers{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Complete reports whether the session reached confirmation.
func (s *State) Complete() bool {
	return s.CurrentStep == StepConfirmation
}
