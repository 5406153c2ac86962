package engine_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cinema-engine/backend/internal/config"
	"github.com/cinema-engine/backend/internal/dataset"
	"github.com/cinema-engine/backend/internal/engine"
	"github.com/cinema-engine/backend/internal/search"
)

// Mocks

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(record *dataset.MovieRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockStorage) Get(id int) (*dataset.MovieRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataset.MovieRecord), args.Error(1)
}

func (m *MockStorage) List() ([]dataset.MovieRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.MovieRecord), args.Error(1)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockLLMProvider struct {
	mock.Mock
}

func (m *MockLLMProvider) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLMProvider) Name() string {
	args := m.Called()
	return args.String(0)
}

func testCatalog() []dataset.MovieRecord {
	return []dataset.MovieRecord{
		{ID: 0, Title: "The Matrix", Plot: "A hacker discovers reality is a simulation and joins a rebellion."},
		{ID: 1, Title: "Hackers", Plot: "Teenage hackers uncover a corporate extortion conspiracy."},
		{ID: 2, Title: "Finding Nemo", Plot: "A clownfish crosses the ocean searching for his missing son."},
	}
}

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg := config.Load()
	logger := logrus.New().WithField("test", "engine")
	store := new(MockStorage)
	vStore := search.NewVectorStore()

	eng, err := engine.NewEngine(cfg, logger, store, vStore)
	require.NoError(t, err)
	return eng
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t)
	assert.NotNil(t, eng)
	assert.NotNil(t, eng.LLM)
	assert.Equal(t, "ollama", eng.LLM.Name())
}

func TestEngine_LoadCatalog(t *testing.T) {
	eng := newTestEngine(t)
	eng.LoadCatalog(testCatalog())

	stats := eng.Stats()
	assert.Equal(t, 3, stats.CatalogSize)
	assert.Len(t, eng.VectorStore.Documents, 3)
}

func TestEngine_Recommend(t *testing.T) {
	eng := newTestEngine(t)
	eng.LoadCatalog(testCatalog())

	results, err := eng.Recommend("hacker conspiracy", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.NotEqual(t, "Finding Nemo", res.Document.Title)
	}

	assert.Equal(t, int64(1), eng.Stats().QueriesServed)
}

func TestEngine_RecommendClampsToMax(t *testing.T) {
	eng := newTestEngine(t)
	eng.Config.Search.MaxTopN = 2
	eng.LoadCatalog(testCatalog())

	results, err := eng.Recommend("hacker", 100)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestEngine_RecommendEmptyCatalog(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Recommend("hacker", 5)
	assert.ErrorIs(t, err, search.ErrEmptyCorpus)
}

func TestEngine_Pitch(t *testing.T) {
	eng := newTestEngine(t)
	eng.LoadCatalog(testCatalog())

	mockLLM := new(MockLLMProvider)
	eng.LLM = mockLLM

	mockLLM.On("Name").Return("mock").Maybe()
	mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("Watch The Matrix tonight.", nil)

	answer, err := eng.Pitch(context.Background(), "hacker conspiracy")
	require.NoError(t, err)
	assert.Equal(t, "Watch The Matrix tonight.", answer)

	// The prompt must carry the retrieved plot context
	var prompt string
	for _, call := range mockLLM.Calls {
		if call.Method == "Generate" {
			prompt = call.Arguments.String(1)
		}
	}
	assert.Contains(t, prompt, "hacker conspiracy")
	assert.Contains(t, prompt, "The Matrix")

	mockLLM.AssertExpectations(t)
}
