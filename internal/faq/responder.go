// Package faq is the scripted FAQ chatbot: a fixed table of question/answer
// records searched by case-insensitive substring containment. It does no
// language understanding, ranking, or learning.
package faq

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackMessage is shown when nothing in the script matches.
const FallbackMessage = "Sorry, I don't have a scripted answer for that yet. Try asking about pricing, results, or GDPR, or book a call and a strategist will help."

// ErrRecordNotFound is returned by Answer for unknown IDs.
var ErrRecordNotFound = errors.New("faq record not found")

// Choice is a matching question offered back to the visitor.
type Choice struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// Response is the outcome of Ask. Exactly one of Choices or Fallback is set.
type Response struct {
	Query    string   `json:"query"`
	Matched  bool     `json:"matched"`
	Choices  []Choice `json:"choices,omitempty"`
	Fallback string   `json:"fallback,omitempty"`
}

// Responder scans a fixed record list.
type Responder struct {
	records   []Record
	questions []string
	keywords  [][]string
}

// NewResponder builds a responder over records. Nil uses the built-in script.
func NewResponder(script []Record) *Responder {
	if script == nil {
		script = records
	}
	r := &Responder{
		records:   make([]Record, len(script)),
		questions: make([]string, len(script)),
		keywords:  make([][]string, len(script)),
	}
	copy(r.records, script)
	for i, rec := range r.records {
		r.questions[i] = strings.ToLower(rec.Question)
		for _, kw := range rec.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				r.keywords[i] = append(r.keywords[i], kw)
			}
		}
	}
	return r
}

// Ask matches query against every record in order. A record matches when its
// question contains the query or the query contains one of its keywords.
func (r *Responder) Ask(query string) Response {
	q := strings.ToLower(strings.TrimSpace(query))
	resp := Response{Query: query}
	if q != "" {
		for i, rec := range r.records {
			if r.matches(i, q) {
				resp.Choices = append(resp.Choices, Choice{ID: rec.ID, Question: rec.Question})
			}
		}
	}
	if len(resp.Choices) == 0 {
		resp.Fallback = FallbackMessage
		return resp
	}
	resp.Matched = true
	return resp
}

func (r *Responder) matches(i int, q string) bool {
	if strings.Contains(r.questions[i], q) {
		return true
	}
	for _, kw := range r.keywords[i] {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Answer returns the record for a chosen question.
func (r *Responder) Answer(id string) (Record, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
}

// Records returns the script in display order.
func (r *Responder) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// LoadScript reads a YAML list of records, replacing the built-in script.
func LoadScript(rd io.Reader) ([]Record, error) {
	var script []Record
	if err := yaml.NewDecoder(rd).Decode(&script); err != nil {
		return nil, fmt.Errorf("faq: decode script: %w", err)
	}
	seen := make(map[string]struct{}, len(script))
	for i, rec := range script {
		if strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.Question) == "" || strings.TrimSpace(rec.Answer) == "" {
			return nil, fmt.Errorf("faq: record %d needs id, question, and answer", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("faq: duplicate record id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}
	return script, nil
}
