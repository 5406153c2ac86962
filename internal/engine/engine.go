package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cinema-engine/backend/internal/config"
	"github.com/cinema-engine/backend/internal/dataset"
	"github.com/cinema-engine/backend/internal/metrics"
	"github.com/cinema-engine/backend/internal/provider"
	"github.com/cinema-engine/backend/internal/search"
	"github.com/cinema-engine/backend/internal/storage"
)

// pitchContextSize is how many top matches are handed to the LLM
const pitchContextSize = 3

// Engine orchestrates the recommender components
type Engine struct {
	Config      *config.Config
	Logger      *logrus.Entry
	Storage     storage.CatalogStorage
	VectorStore *search.VectorStore
	LLM         provider.LLMProvider

	mu    sync.RWMutex
	stats EngineStats
}

type EngineStats struct {
	CatalogSize   int
	QueriesServed int64
	StartTime     time.Time
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.CatalogStorage, vStore *search.VectorStore) (*Engine, error) {
	// Initialize LLM provider
	var llm provider.LLMProvider
	switch cfg.LLM.Provider {
	case "openai":
		llm = provider.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKey)
	default:
		llm = provider.NewOllamaProvider(cfg.LLM.BaseURL, cfg.LLM.Model)
	}

	return &Engine{
		Config:      cfg,
		Logger:      logger,
		Storage:     store,
		VectorStore: vStore,
		LLM:         llm,
		stats: EngineStats{
			StartTime: time.Now(),
		},
	}, nil
}

// LoadCatalog indexes the catalog records into the vector store. Records
// must be in corpus order; their IDs are the tie-break order for ranking.
func (e *Engine) LoadCatalog(records []dataset.MovieRecord) {
	docs := make([]*search.Document, len(records))
	for i, rec := range records {
		docs[i] = &search.Document{
			ID:    rec.ID,
			Title: rec.Title,
			Body:  rec.Plot,
		}
	}
	e.VectorStore.AddDocuments(docs)

	e.mu.Lock()
	e.stats.CatalogSize = len(e.VectorStore.Documents)
	e.mu.Unlock()

	metrics.SetDocumentsIndexed(len(e.VectorStore.Documents))
	e.Logger.Infof("Indexed %d catalog records", len(records))
}

// Recommend ranks the catalog against the query. n is clamped to the
// configured maximum; n <= 0 yields an empty result.
func (e *Engine) Recommend(query string, n int) ([]search.Result, error) {
	if max := e.Config.Search.MaxTopN; max > 0 && n > max {
		n = max
	}

	results, err := e.VectorStore.Recommend(query, n)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.stats.QueriesServed++
	e.mu.Unlock()
	metrics.RecordQuery()

	return results, nil
}

// Pitch retrieves the best matches for the query and asks the LLM to write
// a short viewing pitch grounded in their plots.
func (e *Engine) Pitch(ctx context.Context, query string) (string, error) {
	results, err := e.Recommend(query, pitchContextSize)
	if err != nil {
		return "", fmt.Errorf("retrieval failed: %w", err)
	}

	var sb strings.Builder
	for _, res := range results {
		if res.Score == 0 {
			continue
		}
		sb.WriteString(res.Document.Title)
		sb.WriteString(": ")
		sb.WriteString(truncate(res.Document.Body, e.Config.Search.SnippetLength))
		sb.WriteString("\n")
	}

	prompt := provider.BuildPitchPrompt(query, sb.String())

	e.Logger.Debugf("Requesting pitch from %s", e.LLM.Name())
	return e.LLM.Generate(ctx, prompt)
}

// Stats returns a snapshot of the engine counters
func (e *Engine) Stats() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
