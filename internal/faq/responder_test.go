package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choiceIDs(resp Response) []string {
	ids := make([]string, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAskSurfacesPrivacyQuestionForGDPR(t *testing.T) {
	r := NewResponder(nil)
	for _, query := range []string{"GDPR", "Are you GDPR compliant?", "what about gdpr in germany"} {
		t.Run(query, func(t *testing.T) {
			resp := r.Ask(query)
			require.True(t, resp.Matched)
			assert.Empty(t, resp.Fallback)
			assert.Contains(t, choiceIDs(resp), "gdpr")
		})
	}
}

func TestAskFallback(t *testing.T) {
	r := NewResponder(nil)
	tests := []string{"", "   ", "xyzzy plugh", "🙂🙂🙂"}
	for _, query := range tests {
		resp := r.Ask(query)
		assert.False(t, resp.Matched, "query %q", query)
		assert.Empty(t, resp.Choices)
		assert.Equal(t, FallbackMessage, resp.Fallback)
		assert.Equal(t, query, resp.Query)
	}
}

func TestAskIsCaseInsensitive(t *testing.T) {
	r := NewResponder(nil)
	assert.Contains(t, choiceIDs(r.Ask("HOW MUCH does it COST")), "pricing")
	assert.Contains(t, choiceIDs(r.Ask("hubspot")), "crm")
}

func TestAskMatchesQuestionSubstringAndKeepsOrder(t *testing.T) {
	r := NewResponder([]Record{
		{ID: "a", Question: "What is the Starter plan?", Answer: "A"},
		{ID: "b", Question: "Who is this for?", Answer: "B", Keywords: []string{"plan"}},
		{ID: "c", Question: "When does the Starter plan renew?", Answer: "C"},
	})

	resp := r.Ask("starter plan")
	assert.Equal(t, []string{"a", "b", "c"}, choiceIDs(resp))

	resp = r.Ask("renew")
	assert.Equal(t, []string{"c"}, choiceIDs(resp))
}

func TestBuiltInScript(t *testing.T) {
	r := NewResponder(nil)
	recs := r.Records()
	assert.GreaterOrEqual(t, len(recs), 15)

	seen := map[string]bool{}
	for _, rec := range recs {
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
		assert.NotEmpty(t, rec.Answer)
		// Every record is reachable by asking its own question.
		assert.Contains(t, choiceIDs(r.Ask(rec.Question)), rec.ID)
	}
}

func TestAnswer(t *testing.T) {
	r := NewResponder(nil)
	rec, err := r.Answer("gdpr")
	require.NoError(t, err)
	assert.Contains(t, rec.Question, "GDPR")

	_, err = r.Answer("nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordsReturnsCopy(t *testing.T) {
	r := NewResponder(nil)
	recs := r.Records()
	recs[0].Answer = "changed"
	assert.NotEqual(t, "changed", r.Records()[0].Answer)
}

func TestLoadScript(t *testing.T) {
	script, err := LoadScript(strings.NewReader(`
- id: pricing
  category: Pricing
  question: How much is it?
  answer: It depends.
  keywords: [cost, price]
- id: gdpr
  question: Are you GDPR compliant?
  answer: Yes.
`))
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, []string{"cost", "price"}, script[0].Keywords)

	r := NewResponder(script)
	assert.Equal(t, []string{"pricing"}, choiceIDs(r.Ask("what does it cost")))
}

func TestLoadScriptRejectsBadRecords(t *testing.T) {
	_, err := LoadScript(strings.NewReader("- id: a\n  question: q\n"))
	assert.Error(t, err)

	_, err = LoadScript(strings.NewReader("- {id: a, question: q, answer: x}\n- {id: a, question: q2, answer: y}\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = LoadScript(strings.NewReader("not: [a list"))
	assert.Error(t, err)
}
