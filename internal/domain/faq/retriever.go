package faq

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
)

// Retriever answers a free-text question with the most relevant passages of
// the FAQ document, newline-joined. This is the whole contract the rest of
// the system has with FAQ retrieval.
type Retriever interface {
	Retrieve(ctx context.Context, question string) (string, error)
}

// Embedder turns texts into embedding vectors. Implemented by the Gemini
// client; faked in tests.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

var ErrEmptyDocument = errors.New("faq document produced no chunks")

// Defaults matching the assistant's FAQ document shape.
const (
	DefaultChunkSize    = 700
	DefaultChunkOverlap = 150
	DefaultTopK         = 6
)

// Index is an in-memory embedding index over one document. It is built once
// at startup and is read-only afterwards, so concurrent Retrieve calls need
// no locking.
type Index struct {
	embedder Embedder
	chunks   []string
	vectors  [][]float32
	topK     int
}

// BuildIndex chunks the document and embeds every chunk up front.
func BuildIndex(ctx context.Context, document string, embedder Embedder, chunkSize, chunkOverlap, topK int) (*Index, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	chunks := SplitChunks(document, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}

	vectors, err := embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, errors.New("embedder returned a different number of vectors than chunks")
	}

	return &Index{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
		topK:     topK,
	}, nil
}

// Retrieve embeds the question and returns the topK most similar chunks in
// similarity order, joined by newlines.
func (ix *Index) Retrieve(ctx context.Context, question string) (string, error) {
	qvecs, err := ix.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		return "", err
	}
	if len(qvecs) == 0 {
		return "", errors.New("embedder returned no vector for the question")
	}
	qvec := qvecs[0]

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(ix.chunks))
	for i, v := range ix.vectors {
		ranked[i] = scored{index: i, score: cosineSimilarity(qvec, v)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	k := ix.topK
	if k > len(ranked) {
		k = len(ranked)
	}
	parts := make([]string, 0, k)
	for _, r := range ranked[:k] {
		parts = append(parts, ix.chunks[r.index])
	}
	return strings.Join(parts, "\n"), nil
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
