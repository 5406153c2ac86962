package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cinema-engine/backend/internal/engine"
	"github.com/cinema-engine/backend/internal/metrics"
	"github.com/cinema-engine/backend/internal/search"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/recommend", metrics.Middleware("/api/v1/recommend", s.handleRecommend))
	s.Router.HandleFunc("/api/v1/pitch", metrics.Middleware("/api/v1/pitch", s.handlePitch))
	s.Router.HandleFunc("/api/v1/status", metrics.Middleware("/api/v1/status", s.handleStatus))
	s.Router.Handle("/metrics", metrics.Handler())
}

// Start blocks serving HTTP on addr
func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  s.Engine.Config.Server.ReadTimeout(),
		WriteTimeout: s.Engine.Config.Server.WriteTimeout(),
	}
	return srv.ListenAndServe()
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type RecommendResponse struct {
	Query   string               `json:"query"`
	Results []RecommendationView `json:"results"`
}

type RecommendationView struct {
	Title string  `json:"title"`
	Plot  string  `json:"plot"`
	Score float64 `json:"score"`
}

type StatusResponse struct {
	CatalogSize   int    `json:"catalog_size"`
	QueriesServed int64  `json:"queries_served"`
	Uptime        string `json:"uptime"`
}

type PitchResponse struct {
	Query string `json:"query"`
	Pitch string `json:"pitch"`
}

// Handlers

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	n := s.Engine.Config.Search.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Parameter 'n' must be an integer"})
			return
		}
		n = parsed
	}

	hits, err := s.Engine.Recommend(query, n)
	if err != nil {
		if errors.Is(err, search.ErrEmptyCorpus) {
			jsonResponse(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Catalog not loaded"})
			return
		}
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := RecommendResponse{
		Query:   query,
		Results: make([]RecommendationView, len(hits)),
	}

	for i, hit := range hits {
		txt := hit.Document.Body
		if limit := s.Engine.Config.Search.SnippetLength; limit > 0 && len(txt) > limit {
			txt = txt[:limit] + "..."
		}
		response.Results[i] = RecommendationView{
			Title: hit.Document.Title,
			Plot:  txt,
			Score: hit.Score,
		}
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handlePitch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	pitch, err := s.Engine.Pitch(r.Context(), query)
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, PitchResponse{
		Query: query,
		Pitch: pitch,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Stats()

	jsonResponse(w, http.StatusOK, StatusResponse{
		CatalogSize:   stats.CatalogSize,
		QueriesServed: stats.QueriesServed,
		Uptime:        time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
