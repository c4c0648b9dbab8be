package rag

import (
	"math"

	"github.com/philippgille/chromem-go"
)

// mmrSelect picks k results by maximal marginal relevance: relevance to
// the query (the similarity chromem already computed) penalized by the
// maximum cosine similarity to results selected so far, weighted by
// lambda. Candidates must be ordered by the underlying search; the
// first pick is always the nearest neighbor.
func mmrSelect(candidates []chromem.Result, k int, lambda float32) []chromem.Result {
	if k >= len(candidates) {
		return candidates
	}

	selected := make([]chromem.Result, 0, k)
	remaining := make([]chromem.Result, len(candidates))
	copy(remaining, candidates)

	for len(selected) < k && len(remaining) > 0 {
		best := 0
		bestScore := float32(math.Inf(-1))
		for i, c := range remaining {
			redundancy := float32(0)
			for _, s := range selected {
				if sim := cosineSimilarity(c.Embedding, s.Embedding); sim > redundancy {
					redundancy = sim
				}
			}
			score := lambda*c.Similarity - (1-lambda)*redundancy
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		selected = append(selected, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return selected
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
