package search

import (
	"strings"
	"unicode"
)

// Document represents a rankable catalog entry
type Document struct {
	ID     int
	Title  string // Metadata, never scored
	Body   string
	Vector []float64
}

// Tokenize splits text into normalized tokens: lower-cased, split on any
// rune that is not a letter or a digit, with very short tokens (one or two
// characters) dropped. Documents and queries go through this same function.
func Tokenize(text string) []string {
	f := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}
	fields := strings.FieldsFunc(text, f)
	var tokens []string
	for _, field := range fields {
		if len(field) > 2 { // Skip very short words
			tokens = append(tokens, strings.ToLower(field))
		}
	}
	return tokens
}
