package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAnalysis(t *testing.T) {
	a := &Analysis{Text: "The dog is happy", Subject: "The", Verb: "is", Objects: "happy", Adjectives: "happy"}
	s := FromAnalysis(a)

	assert.Equal(t, "The dog is happy", s.Sentence)
	assert.Equal(t, "The", s.Subject)
	assert.Equal(t, "is", s.Verb)
	assert.Equal(t, "happy", s.Objects)
	assert.Equal(t, "happy", s.Adjectives)
	assert.Same(t, a, s.Analysis)
	assert.Zero(t, s.ID)
}

func TestSentence_Validate(t *testing.T) {
	assert.NoError(t, (&Sentence{Sentence: "hi"}).Validate())

	err := (&Sentence{}).Validate()
	assert.ErrorAs(t, err, &ErrInvalidSentence{})

	err = (&Sentence{Sentence: "hi", Vector: []float64{1, math.NaN()}}).Validate()
	assert.EqualError(t, err, "invalid sentence: vector[1] - is NaN")
}
