package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// CompletionHook receives a session once it reaches confirmation.
type CompletionHook interface {
	ApplicationCompleted(ctx context.Context, state *State) error
}

// Service drives sessions through the wizard on top of a Store.
type Service struct {
	store   Store
	hook    CompletionHook
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
	now     func() time.Time
}

// NewService wires a wizard service. hook and m may be nil.
func NewService(store Store, hook CompletionHook, m *metrics.SiteMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		hook:    hook,
		metrics: m,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a new session at the qualification step.
func (s *Service) Start(ctx context.Context) (*State, error) {
	state := NewState(uuid.NewString(), s.now())
	if err := s.store.Create(ctx, state); err != nil {
		return nil, err
	}
	s.logger.Info("wizard session started", "session_id", state.SessionID)
	return state, nil
}

// Get returns the session's current state.
func (s *Service) Get(ctx context.Context, sessionID string) (*State, error) {
	return s.store.Get(ctx, sessionID)
}

// DeleteSession discards a session and every answer it holds.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info("wizard session deleted", "session_id", sessionID)
	return nil
}

// Submit applies a step's form submission.
func (s *Service) Submit(ctx context.Context, sessionID string, step Step, answers Answers) (*State, error) {
	return s.transition(ctx, sessionID, func(st *State) error {
		return st.Submit(step, answers, s.now())
	})
}

// SelectTier records the chosen tier and advances to the application step.
func (s *Service) SelectTier(ctx context.Context, sessionID, label string) (*State, error) {
	return s.transition(ctx, sessionID, func(st *State) error {
		return st.SelectTier(label, s.now())
	})
}

// ChangeTier returns the session to the tier step.
func (s *Service) ChangeTier(ctx context.Context, sessionID string) (*State, error) {
	return s.transition(ctx, sessionID, func(st *State) error {
		return st.ChangeTier(s.now())
	})
}

// Confirmation returns the summary for a finished session.
func (s *Service) Confirmation(ctx context.Context, sessionID string) (Summary, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return state.Summary()
}

func (s *Service) transition(ctx context.Context, sessionID string, apply func(*State) error) (*State, error) {
	var from Step
	state, err := s.store.Update(ctx, sessionID, func(st *State) error {
		from = st.CurrentStep
		return apply(st)
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			s.metrics.ObserveRejection(reason)
			s.logger.Debug("wizard submission rejected", "session_id", sessionID, "reason", reason, "error", err)
		}
		return nil, err
	}

	s.metrics.ObserveTransition(string(from), string(state.CurrentStep))
	s.logger.Info("wizard step advanced",
		"session_id", sessionID,
		"from", from,
		"to", state.CurrentStep,
		"tier", state.SelectedTier,
	)

	if from != StepConfirmation && state.Complete() {
		s.complete(ctx, state)
	}
	return state, nil
}

// complete hands the finished record to the hook. Failures are logged only:
// the visitor has already reached confirmation.
func (s *Service) complete(ctx context.Context, state *State) {
	if s.hook == nil {
		return
	}
	if err := s.hook.ApplicationCompleted(ctx, state); err != nil {
		s.logger.Error("failed to record completed application",
			"session_id", state.SessionID,
			"tier", state.SelectedTier,
			"error", err,
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrStepMismatch):
		return "step_mismatch"
	case errors.Is(err, ErrUnknownStep):
		return "unknown_step"
	case errors.Is(err, ErrUnknownTier):
		return "unknown_tier"
	case errors.Is(err, ErrTierLocked):
		return "tier_locked"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrWizardComplete):
		return "complete"
	default:
		return ""
	}
}
