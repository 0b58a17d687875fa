package constants

// Query limits
const (
	// DefaultRecentLimit is the number of sentences listed and graphed by default
	DefaultRecentLimit = 20

	// MaxRecentLimit bounds listing requests; network building is O(n²) in the fetch size
	MaxRecentLimit = 100

	// NetworkFetchLimit is the number of most recent sentences a network is built from
	NetworkFetchLimit = 20
)

// Network constants
const (
	// DefaultGroup is the similarity-network group for sentences without a verb
	DefaultGroup = "otros"

	// ObjectKeyMaxLen truncates object phrases when building grammar node keys
	ObjectKeyMaxLen = 80
)

// Grammar network node groups
const (
	GroupSentence  = "sentence"
	GroupSubject   = "subject"
	GroupVerb      = "verb"
	GroupObject    = "object"
	GroupAdjective = "adjective"
)

// DefaultVector stands in for sentences that were stored without an embedding
var DefaultVector = []float64{1, 0, 0}

// Embedding constants
const (
	// EmbeddingMaxRetries is the number of attempts made against the embedding provider
	EmbeddingMaxRetries = 3

	// BackfillConcurrency bounds parallel embedding requests during a backfill
	BackfillConcurrency = 4
)
