package wizard

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID is unknown or expired.
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrStepMismatch is returned when a submission targets a step other than the current one.
	ErrStepMismatch = errors.New("step is not the current step")

	// ErrUnknownStep is returned for labels outside the fixed step sequence.
	ErrUnknownStep = errors.New("unknown step")

	// ErrUnknownTier is returned for labels outside the three fixed tiers.
	ErrUnknownTier = errors.New("unknown tier")

	// ErrTierLocked is returned when the tier can no longer change because the application step was passed.
	ErrTierLocked = errors.New("tier can no longer be changed")

	// ErrMissingField is returned when a required field is blank.
	ErrMissingField = errors.New("required field is missing")

	// ErrWizardComplete is returned for submissions after confirmation.
	ErrWizardComplete = errors.New("wizard already complete")

	// ErrNotConfirmed is returned when the summary is requested before confirmation.
	ErrNotConfirmed = errors.New("wizard has not reached confirmation")

	// ErrUnknownSlot is returned when a time slot is not offered.
	ErrUnknownSlot = errors.New("unknown time slot")
)
