package leads

import (
	"context"
	"fmt"

	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/internal/wizard"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// Archiver keeps an anonymized copy of a captured lead.
type Archiver interface {
	ArchiveLead(ctx context.Context, lead *Lead) error
}

// Notifier tells the sales team about a captured lead.
type Notifier interface {
	LeadCaptured(ctx context.Context, lead *Lead) error
}

// Recorder persists completed wizard sessions as leads.
type Recorder struct {
	repo     Repository
	archiver Archiver
	notifier Notifier
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger
}

// NewRecorder wires the lead sink. archiver and notifier may be nil.
func NewRecorder(repo Repository, archiver Archiver, notifier Notifier, m *metrics.SiteMetrics, logger *logging.Logger) *Recorder {
	if repo == nil {
		panic("leads: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Recorder{repo: repo, archiver: archiver, notifier: notifier, metrics: m, logger: logger}
}

// ApplicationCompleted implements wizard.CompletionHook. Storage failures are
// returned; archive and notification failures are only logged.
func (r *Recorder) ApplicationCompleted(ctx context.Context, state *wizard.State) error {
	req := RequestFromWizard(state)
	lead, err := r.repo.Create(ctx, req)
	r.metrics.ObserveLead(req.Tier, err)
	if err != nil {
		return fmt.Errorf("leads: record session %s: %w", state.SessionID, err)
	}
	r.logger.Info("lead captured", "lead_id", lead.ID, "session_id", lead.SessionID, "tier", lead.Tier)

	if r.archiver != nil {
		if err := r.archiver.ArchiveLead(ctx, lead); err != nil {
			r.logger.Warn("lead archive failed", "lead_id", lead.ID, "error", err)
		}
	}
	if r.notifier != nil {
		if err := r.notifier.LeadCaptured(ctx, lead); err != nil {
			r.logger.Warn("lead notification failed", "lead_id", lead.ID, "error", err)
		}
	}
	return nil
}

var _ wizard.CompletionHook = (*Recorder)(nil)
