package search

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyCorpus is returned when a recommendation is requested before any
// documents have been indexed. An empty corpus is a caller contract
// violation, not a query with no matches.
var ErrEmptyCorpus = errors.New("search: corpus is empty")

// Result holds a ranked document and its similarity score
type Result struct {
	Document *Document
	Score    float64
}

// VectorStore holds the indexed documents and the fitted vectorizer
type VectorStore struct {
	Documents  []*Document
	Vectorizer Vectorizer
}

func NewVectorStore() *VectorStore {
	return &VectorStore{
		Documents:  make([]*Document, 0),
		Vectorizer: NewTFIDFVectorizer(),
	}
}

// AddDocuments fits the vectorizer on the document bodies and indexes the
// documents. The vocabulary is built from the documents alone; later
// queries are projected into it.
func (vs *VectorStore) AddDocuments(docs []*Document) {
	rawTexts := make([]string, len(docs))
	for i, d := range docs {
		rawTexts[i] = d.Body
	}

	vs.Vectorizer.Fit(rawTexts)

	for _, d := range docs {
		d.Vector = vs.Vectorizer.Transform(d.Body)
		vs.Documents = append(vs.Documents, d)
	}
}

// Recommend ranks every indexed document against the query and returns the
// top min(topN, corpus size) results by descending similarity. Exact score
// ties keep the original corpus order, so a query with no recognized terms
// (every score 0) degrades to the first topN documents in catalog order.
// topN <= 0 returns an empty result.
func (vs *VectorStore) Recommend(query string, topN int) ([]Result, error) {
	if len(vs.Documents) == 0 {
		return nil, ErrEmptyCorpus
	}
	if topN <= 0 {
		return []Result{}, nil
	}

	queryVector := vs.Vectorizer.Transform(query)

	results := make([]Result, len(vs.Documents))
	for i, doc := range vs.Documents {
		results[i] = Result{
			Document: doc,
			Score:    CosineSimilarity(queryVector, doc.Vector),
		}
	}

	// Stable sort: equal scores preserve ascending original index order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topN > len(results) {
		topN = len(results)
	}
	return results[:topN], nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Mismatched lengths or a zero vector on either side score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
