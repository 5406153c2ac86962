package search_test

import (
	"math"
	"testing"

	"github.com/cinema-engine/backend/internal/search"
)

func TestTokenize(t *testing.T) {
	text := "Hello, World! This is a test."
	tokens := search.Tokenize(text)

	expected := []string{"hello", "world", "this", "test"}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, token := range tokens {
		if token != expected[i] {
			t.Errorf("At index %d: expected %s, got %s", i, expected[i], token)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := search.Tokenize("!!! ?? -- a b"); len(tokens) != 0 {
		t.Errorf("Expected no tokens, got %v", tokens)
	}
}

func TestFitVocabularyAndIDF(t *testing.T) {
	docs := []string{
		"apple banana",
		"apple orange",
	}

	vectorizer := search.NewTFIDFVectorizer()
	vectorizer.Fit(docs)

	if len(vectorizer.Vocabulary) != 3 {
		t.Errorf("Expected vocabulary size 3 (apple, banana, orange), got %d", len(vectorizer.Vocabulary))
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1 with N = 2.
	// apple appears in both docs: ln(3/3) + 1 = 1.0
	// banana appears in one doc:  ln(3/2) + 1 ≈ 1.4055
	if got := vectorizer.IDF["apple"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("idf(apple): expected 1.0, got %f", got)
	}
	want := math.Log(1.5) + 1
	if got := vectorizer.IDF["banana"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("idf(banana): expected %f, got %f", want, got)
	}
}

func TestTransformUnitNorm(t *testing.T) {
	vectorizer := search.NewTFIDFVectorizer()
	vectorizer.Fit([]string{
		"apple banana",
		"apple orange",
	})

	vec := vectorizer.Transform("apple banana banana")
	if len(vec) != 3 {
		t.Fatalf("Expected vector length 3, got %d", len(vec))
	}

	var sum float64
	for _, w := range vec {
		if w < 0 {
			t.Errorf("Expected non-negative weights, got %f", w)
		}
		sum += w * w
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-9 {
		t.Errorf("Expected unit norm, got %f", math.Sqrt(sum))
	}
}

func TestTransformEmptyText(t *testing.T) {
	vectorizer := search.NewTFIDFVectorizer()
	vectorizer.Fit([]string{"apple banana", "apple orange"})

	for _, text := range []string{"", "?!...", "a b"} {
		vec := vectorizer.Transform(text)
		for i, w := range vec {
			if w != 0 {
				t.Errorf("Transform(%q): expected zero vector, component %d is %f", text, i, w)
			}
		}
	}
}

func TestTransformOutOfVocabulary(t *testing.T) {
	vectorizer := search.NewTFIDFVectorizer()
	vectorizer.Fit([]string{"apple banana", "apple orange"})

	// Unknown terms contribute nothing
	vec := vectorizer.Transform("kiwi mango")
	for _, w := range vec {
		if w != 0 {
			t.Fatalf("Expected zero vector for unseen terms, got %v", vec)
		}
	}

	// A mixed query keeps its known term and is still unit length
	vec = vectorizer.Transform("apple kiwi")
	nonZero := 0
	var sum float64
	for _, w := range vec {
		if w != 0 {
			nonZero++
		}
		sum += w * w
	}
	if nonZero != 1 {
		t.Errorf("Expected exactly one non-zero component, got %d", nonZero)
	}
	if math.Abs(math.Sqrt(sum)-1.0) > 1e-9 {
		t.Errorf("Expected unit norm, got %f", math.Sqrt(sum))
	}
}

func TestFitDeterministicVocabulary(t *testing.T) {
	docs := []string{"one two three", "two four", "five one"}

	v1 := search.NewTFIDFVectorizer()
	v1.Fit(docs)
	v2 := search.NewTFIDFVectorizer()
	v2.Fit(docs)

	for term, idx := range v1.Vocabulary {
		if v2.Vocabulary[term] != idx {
			t.Errorf("Vocabulary index for %q differs between runs: %d vs %d", term, idx, v2.Vocabulary[term])
		}
	}
}
