// Package embed provides the text-embedding collaborator port and similarity
// computation.
package embed

import (
	"context"
	"math"
)

// Vector is a dense embedding vector.
type Vector []float64

// Embedder generates embedding vectors from text.
type Embedder interface {
	// Embed generates a vector for a single text
	Embed(ctx context.Context, text string) (Vector, error)

	// EmbedBatch generates vectors for multiple texts. When the error is nil
	// the result has the same length as texts, with result[i] for texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([]Vector, error)
}

// CosineSimilarity computes similarity between two vectors (1.0 = identical,
// 0.0 = orthogonal). Returns 0 for mismatched lengths or zero vectors.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
