package hotels

import (
	"hash/fnv"
	"math"
	"strings"
)

// EmbeddingDim is the fixed width of the feature-hashing embedding.
// Descriptions are embedded at seed time and preferences at query time
// with the same function, so cosine similarity between them is
// meaningful without an external model.
const EmbeddingDim = 128

// Embed maps text to a deterministic L2-normalized vector using the
// hashing trick over lowercased word unigrams and bigrams.
func Embed(text string) []float64 {
	v := make([]float64, EmbeddingDim)

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return v
	}

	for i, w := range words {
		addFeature(v, w)
		if i+1 < len(words) {
			addFeature(v, w+" "+words[i+1])
		}
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}

	return v
}

func addFeature(v []float64, feature string) {
	h := fnv.New32a()
	h.Write([]byte(feature))
	sum := h.Sum32()

	idx := int(sum % EmbeddingDim)
	// Split the hash space into positive and negative contributions so
	// collisions tend to cancel rather than accumulate.
	sign := 1.0
	if sum&0x80000000 != 0 {
		sign = -1.0
	}
	v[idx] += sign
}

// Cosine returns the cosine similarity of two equal-length vectors.
// Zero vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
