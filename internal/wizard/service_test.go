package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

type recordingHook struct {
	calls []*State
	err   error
}

func (h *recordingHook) ApplicationCompleted(_ context.Context, state *State) error {
	h.calls = append(h.calls, state)
	return h.err
}

func newTestService(hook CompletionHook) *Service {
	svc := NewService(NewMemoryStore(time.Hour), hook, metrics.NewSiteMetrics(prometheus.NewRegistry()), logging.Discard())
	svc.now = func() time.Time { return testNow }
	return svc
}

func runToConfirmation(t *testing.T, svc *Service, tier string) *State {
	t.Helper()
	ctx := context.Background()
	state, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state.SessionID, StepQualification, qualificationAnswers())
	require.NoError(t, err)
	_, err = svc.SelectTier(ctx, state.SessionID, tier)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state.SessionID, StepApplication, applicationAnswers())
	require.NoError(t, err)
	final, err := svc.Submit(ctx, state.SessionID, StepCalendar, Answers{})
	require.NoError(t, err)
	return final
}

func TestServiceStartAssignsSession(t *testing.T) {
	svc := newTestService(nil)
	state, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, StepQualification, state.CurrentStep)
	assert.Equal(t, testNow, state.CreatedAt)

	loaded, err := svc.Get(context.Background(), state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, loaded.SessionID)
}

func TestServiceCallsHookOnceOnConfirmation(t *testing.T) {
	hook := &recordingHook{}
	svc := newTestService(hook)
	final := runToConfirmation(t, svc, "Growth")

	require.Len(t, hook.calls, 1)
	assert.Equal(t, final.SessionID, hook.calls[0].SessionID)
	assert.Equal(t, "Growth", hook.calls[0].SelectedTier)

	_, err := svc.Submit(context.Background(), final.SessionID, StepConfirmation, nil)
	assert.ErrorIs(t, err, ErrWizardComplete)
	assert.Len(t, hook.calls, 1)
}

func TestServiceHookFailureDoesNotFailWizard(t *testing.T) {
	hook := &recordingHook{err: errors.New("db down")}
	svc := newTestService(hook)
	final := runToConfirmation(t, svc, "Starter")
	assert.True(t, final.Complete())

	summary, err := svc.Confirmation(context.Background(), final.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Starter", summary.Tier)
}

func TestServiceChangeTier(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	state, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, state.SessionID, StepQualification, qualificationAnswers())
	require.NoError(t, err)
	_, err = svc.SelectTier(ctx, state.SessionID, "Enterprise")
	require.NoError(t, err)

	back, err := svc.ChangeTier(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, StepTier, back.CurrentStep)
}

func TestServiceUnknownSession(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.Submit(context.Background(), "nope", StepQualification, qualificationAnswers())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Confirmation(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestServiceDeleteSessionDropsAnswers(t *testing.T) {
	svc := newTestService(nil)
	final := runToConfirmation(t, svc, "Growth")
	require.NotEmpty(t, final.Answers.Get("email"))

	require.NoError(t, svc.DeleteSession(context.Background(), final.SessionID))

	_, err := svc.Get(context.Background(), final.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Confirmation(context.Background(), final.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "step_mismatch", rejectionReason(ErrStepMismatch))
	assert.Equal(t, "missing_field", rejectionReason(errors.Join(errors.New("ctx"), ErrMissingField)))
	assert.Equal(t, "", rejectionReason(errors.New("io")))
}
