package graph

// Term roles, stored on TAGGED relationships
const (
	RoleSubject   = "subject"
	RoleVerb      = "verb"
	RoleObject    = "object"
	RoleAdjective = "adjective"
)

// Term is a word or phrase shared between sentences.
// Key matches the grammar network node id, e.g. "verb:is".
type Term struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Role  string `json:"role"`
}

// TermUsage counts how many stored sentences are tagged with a term
type TermUsage struct {
	Term
	Sentences int64 `json:"sentences"`
}

// RelatedSentence is a stored sentence that shares terms with another one
type RelatedSentence struct {
	ID          int64    `json:"id"`
	Sentence    string   `json:"sentence"`
	SharedTerms []string `json:"shared_terms"`
	Score       float64  `json:"score"`
}
