package network

import (
	"fmt"
	"strings"

	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/state"
	"semnet-explorer/backend/internal/utils"
)

// grammarBuilder accumulates nodes, keeping the first label seen for a key
type grammarBuilder struct {
	seen  map[string]bool
	nodes []GrammarNode
	links []GrammarLink
}

func (b *grammarBuilder) add(id, group, label string) {
	if b.seen[id] {
		return
	}
	b.seen[id] = true
	b.nodes = append(b.nodes, GrammarNode{ID: id, Label: label, Group: group})
}

func (b *grammarBuilder) tag(sentenceID, id, group, label string) {
	b.add(id, group, label)
	b.links = append(b.links, GrammarLink{Source: sentenceID, Target: id})
}

// BuildGrammarNetwork links each sentence to nodes for its subject, verb,
// object phrase and adjectives. Tag nodes are shared between sentences by
// their lower-cased key.
func BuildGrammarNetwork(sentences []state.Sentence) *GrammarNetwork {
	b := &grammarBuilder{
		seen:  make(map[string]bool),
		nodes: []GrammarNode{},
		links: []GrammarLink{},
	}

	for _, s := range sentences {
		sid := SentenceKey(s.ID)
		b.add(sid, constants.GroupSentence, s.Sentence)

		if s.Subject != "" {
			b.tag(sid, SubjectKey(s.Subject), constants.GroupSubject, s.Subject)
		}
		if s.Verb != "" {
			b.tag(sid, VerbKey(s.Verb), constants.GroupVerb, s.Verb)
		}
		if s.Objects != "" {
			b.tag(sid, ObjectKey(s.Objects), constants.GroupObject, s.Objects)
		}
		for _, adj := range utils.SplitList(s.Adjectives) {
			b.tag(sid, AdjectiveKey(adj), constants.GroupAdjective, adj)
		}
	}

	return &GrammarNetwork{Nodes: b.nodes, Links: b.links}
}

// SentenceKey is the grammar node id of a stored sentence
func SentenceKey(id int64) string {
	return fmt.Sprintf("s:%d", id)
}

// SubjectKey is the grammar node id shared by equal subjects
func SubjectKey(subject string) string {
	return "subject:" + strings.ToLower(subject)
}

// VerbKey is the grammar node id shared by equal verbs
func VerbKey(verb string) string {
	return "verb:" + strings.ToLower(verb)
}

// ObjectKey is the grammar node id shared by object phrases with a common prefix
func ObjectKey(objects string) string {
	return "obj:" + utils.Truncate(strings.ToLower(objects), constants.ObjectKeyMaxLen)
}

// AdjectiveKey is the grammar node id shared by equal adjectives
func AdjectiveKey(adjective string) string {
	return "adj:" + strings.ToLower(adjective)
}
