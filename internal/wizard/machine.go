package wizard

import (
	"fmt"
	"time"
)

// Submit applies the current step's form submission and advances one step.
// The tier step expects a "tier" answer and behaves like SelectTier.
func (s *State) Submit(step Step, answers Answers, now time.Time) error {
	if step.Index() < 0 {
		return ErrUnknownStep
	}
	if s.Complete() {
		return ErrWizardComplete
	}
	if step != s.CurrentStep {
		return fmt.Errorf("%w: submitted %s, current %s", ErrStepMismatch, step, s.CurrentStep)
	}
	if step == StepTier {
		return s.SelectTier(answers.Get("tier"), now)
	}
	for _, field := range requiredFields[step] {
		if answers.Get(field) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}
	if s.Answers == nil {
		s.Answers = Answers{}
	}
	for k, v := range answers {
		s.Answers[k] = v
	}
	s.advance(now)
	return nil
}

// SelectTier records a tier and moves to the application step. Re-selection
// is allowed until the application step has been submitted.
func (s *State) SelectTier(label string, now time.Time) error {
	if err := s.tierChangeAllowed(); err != nil {
		return err
	}
	tier, ok := LookupTier(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, label)
	}
	s.SelectedTier = tier.Label
	s.CurrentStep = StepApplication
	s.UpdatedAt = now
	return nil
}

// ChangeTier returns to the tier step. It is the only backward transition.
func (s *State) ChangeTier(now time.Time) error {
	if err := s.tierChangeAllowed(); err != nil {
		return err
	}
	s.CurrentStep = StepTier
	s.UpdatedAt = now
	return nil
}

func (s *State) tierChangeAllowed() error {
	switch s.CurrentStep {
	case StepTier, StepApplication:
		return nil
	case StepQualification:
		return fmt.Errorf("%w: current %s", ErrStepMismatch, s.CurrentStep)
	default:
		return ErrTierLocked
	}
}

func (s *State) advance(now time.Time) {
	if next, ok := s.CurrentStep.Next(); ok {
		s.CurrentStep = next
	}
	s.UpdatedAt = now
}
