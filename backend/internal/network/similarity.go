package network

import (
	"math"

	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/state"
)

// CosineSimilarity returns dot(a,b) / (|a|·|b|).
//
// It returns 0 when either vector is absent or has zero norm. Components
// missing from the shorter vector count as 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i, x := range a {
		normA += x * x
		if i < len(b) {
			dot += x * b[i]
		}
	}
	for _, y := range b {
		normB += y * y
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// BuildSimilarityNetwork makes one node per sentence and links every
// unordered pair whose cosine similarity is positive.
func BuildSimilarityNetwork(sentences []state.Sentence) *SimilarityNetwork {
	nodes := make([]SimilarityNode, len(sentences))
	for i, s := range sentences {
		group := s.Verb
		if group == "" {
			group = constants.DefaultGroup
		}
		vector := s.Vector
		if len(vector) == 0 {
			vector = append([]float64(nil), constants.DefaultVector...)
		}
		nodes[i] = SimilarityNode{
			ID:     s.ID,
			Name:   s.Sentence,
			Group:  group,
			Vector: vector,
		}
	}

	links := []SimilarityLink{}
	comparisons := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			comparisons++
			sim := CosineSimilarity(nodes[i].Vector, nodes[j].Vector)
			if sim > 0 {
				links = append(links, SimilarityLink{
					Source: nodes[i].ID,
					Target: nodes[j].ID,
					Value:  sim,
				})
			}
		}
	}

	return &SimilarityNetwork{
		Nodes:       nodes,
		Links:       links,
		Comparisons: comparisons,
	}
}
