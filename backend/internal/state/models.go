package state

import (
	"fmt"
	"time"
)

// Analysis is the heuristic breakdown of a single sentence
type Analysis struct {
	Text       string `json:"text"`
	Subject    string `json:"subject,omitempty"`
	Verb       string `json:"verb,omitempty"`
	Objects    string `json:"objects,omitempty"`
	Adjectives string `json:"adjectives,omitempty"`
	Details    string `json:"details,omitempty"`
}

// Sentence is one stored user input plus its heuristic tags.
// Empty tag strings mean the tag is absent and are persisted as NULL.
type Sentence struct {
	ID         int64     `json:"id"`
	Sentence   string    `json:"sentence"`
	Subject    string    `json:"subject,omitempty"`
	Verb       string    `json:"verb,omitempty"`
	Objects    string    `json:"objects,omitempty"`
	Adjectives string    `json:"adjectives,omitempty"`
	Vector     []float64 `json:"vector,omitempty"`
	Analysis   *Analysis `json:"analysis,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromAnalysis builds an unsaved Sentence record from an analysis result
func FromAnalysis(a *Analysis) *Sentence {
	return &Sentence{
		Sentence:   a.Text,
		Subject:    a.Subject,
		Verb:       a.Verb,
		Objects:    a.Objects,
		Adjectives: a.Adjectives,
		Analysis:   a,
	}
}

// Validate checks if the Sentence can be persisted
func (s *Sentence) Validate() error {
	if s.Sentence == "" {
		return ErrInvalidSentence{Field: "sentence", Reason: "cannot be empty"}
	}
	for i, v := range s.Vector {
		if v != v {
			return ErrInvalidSentence{Field: fmt.Sprintf("vector[%d]", i), Reason: "is NaN"}
		}
	}
	return nil
}

// Errors

type ErrInvalidSentence struct {
	Field  string
	Reason string
}

func (e ErrInvalidSentence) Error() string {
	return fmt.Sprintf("invalid sentence: %s - %s", e.Field, e.Reason)
}
