package network

// SimilarityNode is a sentence in the similarity network
type SimilarityNode struct {
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Group  string    `json:"group"`
	Vector []float64 `json:"vector"`
}

// SimilarityLink joins two sentences whose vectors point the same way
type SimilarityLink struct {
	Source int64   `json:"source"`
	Target int64   `json:"target"`
	Value  float64 `json:"value"`
}

// SimilarityNetwork is force-graph data built from vector similarity
type SimilarityNetwork struct {
	Nodes       []SimilarityNode `json:"nodes"`
	Links       []SimilarityLink `json:"links"`
	Comparisons int              `json:"comparisons"`
}

// GrammarNode is a sentence or one of its tags in the grammar network
type GrammarNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
}

// GrammarLink joins a sentence node to a tag node
type GrammarLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GrammarNetwork is force-graph data built from shared grammatical tags
type GrammarNetwork struct {
	Nodes []GrammarNode `json:"nodes"`
	Links []GrammarLink `json:"links"`
}
