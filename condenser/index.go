package condenser

import (
	"github.com/t3rryhuang/Sentiment-Insight/embed"
)

// SimilarityThreshold is the inclusive cosine score at or above which a topic
// merges into an existing condensed topic.
const SimilarityThreshold = 0.5

// ClusterIndex is the reference set of condensed-topic embeddings for one
// condensation run. It is an owned value threaded through each Condense call,
// built from storage at run start and discarded at run end, never shared
// module state. Clusters only grow; the index never merges or splits them.
type ClusterIndex struct {
	ids     []uint
	vectors []embed.Vector
}

func NewClusterIndex() *ClusterIndex {
	return &ClusterIndex{}
}

// Add appends a cluster so later topics in the same run can merge into it.
func (ix *ClusterIndex) Add(id uint, vec embed.Vector) {
	ix.ids = append(ix.ids, id)
	ix.vectors = append(ix.vectors, vec)
}

// BestMatch returns the cluster with the highest cosine similarity to vec.
// The scan is exhaustive: the threshold contract is exact, so no approximate
// index is used. ok is false for an empty index.
func (ix *ClusterIndex) BestMatch(vec embed.Vector) (id uint, score float64, ok bool) {
	if len(ix.ids) == 0 {
		return 0, 0, false
	}

	bestIdx := 0
	bestScore := embed.CosineSimilarity(vec, ix.vectors[0])
	for i := 1; i < len(ix.vectors); i++ {
		if s := embed.CosineSimilarity(vec, ix.vectors[i]); s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	return ix.ids[bestIdx], bestScore, true
}

// Match applies the merge threshold to the best match. ok is false when the
// index is empty or the best score falls below the threshold.
func (ix *ClusterIndex) Match(vec embed.Vector) (uint, bool) {
	id, score, ok := ix.BestMatch(vec)
	if !ok || score < SimilarityThreshold {
		return 0, false
	}
	return id, true
}

func (ix *ClusterIndex) Len() int {
	return len(ix.ids)
}
