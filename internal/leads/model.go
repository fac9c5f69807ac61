package leads

import (
	"strings"
	"time"

	"github.com/wolfman30/leadgen-site/internal/wizard"
)

// Lead is an application captured when a wizard session reached confirmation.
type Lead struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Tier      string            `json:"tier"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Company   string            `json:"company"`
	Phone     string            `json:"phone,omitempty"`
	Answers   map[string]string `json:"answers"`
	CreatedAt time.Time         `json:"created_at"`
}

// CreateLeadRequest is the record handed over by the wizard.
type CreateLeadRequest struct {
	SessionID string
	Tier      string
	Name      string
	Email     string
	Company   string
	Phone     string
	Answers   map[string]string
}

// Validate checks the fields a stored lead cannot do without.
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return ErrMissingSession
	}
	if strings.TrimSpace(r.Tier) == "" {
		return ErrMissingTier
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingContact
	}
	return nil
}

// RequestFromWizard flattens a completed session into a create request.
func RequestFromWizard(state *wizard.State) *CreateLeadRequest {
	answers := make(map[string]string, len(state.Answers))
	for k, v := range state.Answers {
		answers[k] = v
	}
	return &CreateLeadRequest{
		SessionID: state.SessionID,
		Tier:      state.SelectedTier,
		Name:      state.Answers.Get("name"),
		Email:     state.Answers.Get("email"),
		Company:   state.Answers.Get("company"),
		Phone:     state.Answers.Get("phone"),
		Answers:   answers,
	}
}

// ListLeadsFilter narrows admin listings.
type ListLeadsFilter struct {
	Tier      string
	SessionID string
	Limit     int
	Offset    int
}
