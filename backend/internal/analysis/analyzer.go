// Package analysis guesses the grammatical parts of an English sentence
// with a handful of fixed heuristics. It does no real parsing.
package analysis

import (
	"fmt"
	"strings"

	"semnet-explorer/backend/internal/state"
	"semnet-explorer/backend/internal/utils"
	apperrors "semnet-explorer/backend/pkg/errors"
)

var knownVerbs = map[string]bool{
	"is": true, "are": true, "am": true, "was": true, "were": true,
	"go": true, "goes": true, "went": true,
	"eat": true, "eats": true, "ate": true,
	"feel": true, "feels": true,
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	"say": true, "says": true, "said": true,
	"be": true, "being": true,
}

var adjectiveSuffixes = []string{"y", "ful", "ous", "ive"}

// Analyze tags text with a subject, verb, objects and adjectives.
//
// The subject is the first word. The verb is the first word found in a fixed
// verb list after lower-casing and stripping non-letters; the original word is
// kept. Objects are the words following the verb, or following the subject
// when no verb matched. Adjectives are words with an adjective-like suffix.
func Analyze(text string) (*state.Analysis, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, apperrors.ErrEmptySentence
	}

	subject := words[0]

	verb := ""
	verbIdx := -1
	for i, w := range words {
		if IsKnownVerb(w) {
			verb, verbIdx = w, i
			break
		}
	}

	objectsFrom := 1
	if verbIdx >= 0 {
		objectsFrom = verbIdx + 1
	}
	objects := strings.Join(words[objectsFrom:], " ")

	var adjectives []string
	for _, w := range words {
		if hasAdjectiveSuffix(w) {
			adjectives = append(adjectives, w)
		}
	}
	adjList := strings.Join(adjectives, ", ")

	return &state.Analysis{
		Text:       text,
		Subject:    subject,
		Verb:       verb,
		Objects:    objects,
		Adjectives: adjList,
		Details:    fmt.Sprintf("subject: %s | verb: %s | objects: %s | adjectives: %s", subject, verb, objects, adjList),
	}, nil
}

// IsKnownVerb reports whether word matches the verb list
func IsKnownVerb(word string) bool {
	return knownVerbs[utils.LettersOnly(word)]
}

func hasAdjectiveSuffix(word string) bool {
	for _, suffix := range adjectiveSuffixes {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}
