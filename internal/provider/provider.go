package provider

import (
	"context"
	"net/http"
	"time"
)

// LLMProvider defines the interface for AI model integration
type LLMProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

// BuildPitchPrompt assembles the retrieval-augmented prompt for the pitch
// endpoint. matches holds the plot context retrieved for the query.
func BuildPitchPrompt(query, matches string) string {
	if matches == "" {
		matches = "No matching movies were found."
	}

	return "You are a movie recommendation assistant. Using only the matched movies below,\n" +
		"write a short pitch (2-3 sentences per movie) telling the user why each one fits their request.\n" +
		"Do not invent movies that are not listed.\n\n" +
		"MATCHED MOVIES:\n" + matches + "\n\n" +
		"USER REQUEST:\n" + query + "\n\n" +
		"PITCH:\n"
}
