package rag

import (
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMMRSelectPrefersDiversity(t *testing.T) {
	// B is nearly a duplicate of A; C is less relevant but diverse.
	a := chromem.Result{ID: "a", Content: "a", Similarity: 0.95, Embedding: []float32{0.95, 0.312}}
	b := chromem.Result{ID: "b", Content: "b", Similarity: 0.94, Embedding: []float32{0.94, 0.341}}
	c := chromem.Result{ID: "c", Content: "c", Similarity: 0.90, Embedding: []float32{0.9, -0.436}}

	selected := mmrSelect([]chromem.Result{a, b, c}, 2, 0.5)
	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].ID)
	assert.Equal(t, "c", selected[1].ID)
}

func TestMMRSelectReturnsAllWhenKCoversCandidates(t *testing.T) {
	a := chromem.Result{ID: "a", Similarity: 0.9, Embedding: []float32{1, 0}}
	b := chromem.Result{ID: "b", Similarity: 0.8, Embedding: []float32{0, 1}}

	selected := mmrSelect([]chromem.Result{a, b}, 5, 0.5)
	assert.Len(t, selected, 2)
}

func TestMMRSelectFirstPickIsNearestNeighbor(t *testing.T) {
	a := chromem.Result{ID: "a", Similarity: 0.99, Embedding: []float32{1, 0}}
	b := chromem.Result{ID: "b", Similarity: 0.5, Embedding: []float32{0, 1}}
	c := chromem.Result{ID: "c", Similarity: 0.4, Embedding: []float32{0.707, 0.707}}

	selected := mmrSelect([]chromem.Result{a, b, c}, 1, 0.5)
	require.Len(t, selected, 1)
	assert.Equal(t, "a", selected[0].ID)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Zero(t, cosineSimilarity(nil, nil))
}
