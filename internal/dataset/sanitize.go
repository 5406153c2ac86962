package dataset

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup from scraped plot text, keeping only the visible
// text content. Script and style bodies are dropped entirely. Plain text
// without any tags is returned unchanged.
func StripHTML(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))

	var sb strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			// End of input
			return strings.Join(strings.Fields(sb.String()), " ")

		case html.StartTagToken:
			token := tokenizer.Token()
			if token.Data == "script" || token.Data == "style" {
				skipDepth++
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if (token.Data == "script" || token.Data == "style") && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth == 0 {
				sb.WriteString(tokenizer.Token().Data)
				sb.WriteString(" ")
			}
		}
	}
}
