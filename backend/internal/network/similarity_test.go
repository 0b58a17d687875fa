package network

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semnet-explorer/backend/internal/constants"
	"semnet-explorer/backend/internal/state"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"scaled", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"nil a", nil, []float64{1}, 0},
		{"nil b", []float64{1}, nil, 0},
		{"zero vector", []float64{0, 0, 0}, []float64{1, 2, 3}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		// b is treated as [1, 0, 0]
		{"shorter b", []float64{1, 1, 0}, []float64{1}, 0.7071067811865475},
		// a is treated as [1, 0, 0]
		{"shorter a", []float64{1}, []float64{1, 1, 0}, 0.7071067811865475},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	for _, v := range [][]float64{{1, 0, 0}, {0.3, -0.7, 2.5}, {42}} {
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-12)
	}
}

func sentencesWithVectors(n int) []state.Sentence {
	out := make([]state.Sentence, n)
	for i := range out {
		out[i] = state.Sentence{
			ID:       int64(i + 1),
			Sentence: fmt.Sprintf("sentence %d", i+1),
			Vector:   []float64{float64(i + 1), 1, 0},
		}
	}
	return out
}

func TestBuildSimilarityNetwork_PairCount(t *testing.T) {
	net := BuildSimilarityNetwork(sentencesWithVectors(20))

	assert.Equal(t, 190, net.Comparisons)
	assert.Len(t, net.Nodes, 20)
	// all vectors are in the positive quadrant
	assert.Len(t, net.Links, 190)

	for _, l := range net.Links {
		assert.Less(t, l.Source, l.Target)
		assert.Greater(t, l.Value, 0.0)
	}
}

func TestBuildSimilarityNetwork_Defaults(t *testing.T) {
	net := BuildSimilarityNetwork([]state.Sentence{
		{ID: 7, Sentence: "The dog is happy", Verb: "is"},
		{ID: 9, Sentence: "Cats sleep"},
	})

	require.Len(t, net.Nodes, 2)
	assert.Equal(t, "is", net.Nodes[0].Group)
	assert.Equal(t, constants.DefaultGroup, net.Nodes[1].Group)
	assert.Equal(t, constants.DefaultVector, net.Nodes[0].Vector)

	// two default vectors are identical
	require.Len(t, net.Links, 1)
	assert.Equal(t, SimilarityLink{Source: 7, Target: 9, Value: 1}, net.Links[0])
	assert.Equal(t, 1, net.Comparisons)
}

func TestBuildSimilarityNetwork_SkipsNonPositive(t *testing.T) {
	net := BuildSimilarityNetwork([]state.Sentence{
		{ID: 1, Sentence: "a", Vector: []float64{1, 0}},
		{ID: 2, Sentence: "b", Vector: []float64{0, 1}},
		{ID: 3, Sentence: "c", Vector: []float64{-1, 0}},
		{ID: 4, Sentence: "d", Vector: []float64{0, 0}},
	})

	assert.Equal(t, 6, net.Comparisons)
	assert.Empty(t, net.Links)
}

func TestBuildSimilarityNetwork_EmptyEncodesAsArrays(t *testing.T) {
	net := BuildSimilarityNetwork(nil)
	assert.Zero(t, net.Comparisons)

	data, err := json.Marshal(net)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"links":[],"comparisons":0}`, string(data))
}

func TestBuildSimilarityNetwork_DefaultVectorsAreIndependent(t *testing.T) {
	net := BuildSimilarityNetwork([]state.Sentence{
		{ID: 1, Sentence: "hello"},
		{ID: 2, Sentence: "world"},
	})
	require.Len(t, net.Nodes, 2)

	net.Nodes[0].Vector[0] = 42

	assert.Equal(t, []float64{1, 0, 0}, net.Nodes[1].Vector)
	assert.Equal(t, []float64{1, 0, 0}, constants.DefaultVector)
}
