package search

import (
	"math"
)

// Vectorizer turns text into a vector
type Vectorizer interface {
	Fit(docs []string)
	Transform(text string) []float64
}

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency
// weighting with a fixed, precomputed vocabulary: Fit is called once over
// the document corpus and queries are projected into that vocabulary, so
// query terms never seen during Fit contribute zero weight.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        map[string]float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		Vocabulary: make(map[string]int),
		IDF:        make(map[string]float64),
	}
}

// Fit analyzes the corpus to build vocabulary and IDF stats. Column indices
// are assigned in first-seen order, so the vocabulary is deterministic for
// a given document order.
func (v *TFIDFVectorizer) Fit(docs []string) {
	docCount := float64(len(docs))
	wordDocCounts := make(map[string]int)

	// 1. Build vocabulary and count document occurrences
	for _, doc := range docs {
		tokens := Tokenize(doc)
		seenInDoc := make(map[string]bool)
		for _, token := range tokens {
			if !seenInDoc[token] {
				wordDocCounts[token]++
				seenInDoc[token] = true
			}
			if _, exists := v.Vocabulary[token]; !exists {
				v.Vocabulary[token] = len(v.Vocabulary)
			}
		}
	}

	// 2. Smoothed IDF: ln((1+N)/(1+df)) + 1, always >= 0 and defined
	// even for terms present in every document.
	for word, count := range wordDocCounts {
		v.IDF[word] = math.Log((1+docCount)/(1+float64(count))) + 1
	}
}

// Transform converts text to an L2-normalized vector over the fitted
// vocabulary. Raw weights are (count / totalTokens) * idf; the vector is
// then divided by its Euclidean norm so every non-empty document has unit
// length. Text with no recognized tokens yields the all-zero vector.
func (v *TFIDFVectorizer) Transform(text string) []float64 {
	vector := make([]float64, len(v.Vocabulary))
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vector
	}

	tf := make(map[string]float64)
	for _, token := range tokens {
		tf[token]++
	}

	for token, count := range tf {
		if idx, exists := v.Vocabulary[token]; exists {
			idf := v.IDF[token]
			vector[idx] = (count / float64(len(tokens))) * idf
		}
	}

	normalize(vector)
	return vector
}

// normalize scales the vector to unit length in place. The all-zero vector
// is left untouched.
func normalize(vec []float64) {
	var sum float64
	for _, w := range vec {
		sum += w * w
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
