package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the recommender service
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Dataset DatasetConfig `yaml:"dataset"`
	Search  SearchConfig  `yaml:"search"`
	LLM     LLMConfig     `yaml:"llm"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

// ReadTimeout returns the read timeout as a duration
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the write timeout as a duration
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// DatasetConfig holds catalog dataset settings
type DatasetConfig struct {
	Path        string `yaml:"path"`
	TitleColumn string `yaml:"title_column"`
	PlotColumn  string `yaml:"plot_column"`
	MaxRecords  int    `yaml:"max_records"` // 0 = unlimited
	DataDir     string `yaml:"data_dir"`
}

// SearchConfig holds ranking settings
type SearchConfig struct {
	DefaultTopN   int `yaml:"default_top_n"`
	MaxTopN       int `yaml:"max_top_n"`
	SnippetLength int `yaml:"snippet_length"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// Load builds the configuration in three layers: built-in defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
// Later layers win.
func Load() *Config {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		// A broken config file is ignored in favor of defaults + env;
		// the caller can log cfg to see what was applied.
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	applyEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 30,
		},
		Dataset: DatasetConfig{
			Path:        "./movies.csv",
			TitleColumn: "Title",
			PlotColumn:  "Plot",
			MaxRecords:  0,
			DataDir:     "./data",
		},
		Search: SearchConfig{
			DefaultTopN:   5,
			MaxTopN:       50,
			SnippetLength: 200,
		},
		LLM: LLMConfig{
			Provider: "ollama",
			BaseURL:  "",
			Model:    "qwen3:1.7b",
			APIKey:   "",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = GetStringEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.ReadTimeoutSec = GetIntEnv("SERVER_READ_TIMEOUT_SEC", cfg.Server.ReadTimeoutSec)
	cfg.Server.WriteTimeoutSec = GetIntEnv("SERVER_WRITE_TIMEOUT_SEC", cfg.Server.WriteTimeoutSec)

	cfg.Dataset.Path = GetStringEnv("DATASET_PATH", cfg.Dataset.Path)
	cfg.Dataset.TitleColumn = GetStringEnv("DATASET_TITLE_COLUMN", cfg.Dataset.TitleColumn)
	cfg.Dataset.PlotColumn = GetStringEnv("DATASET_PLOT_COLUMN", cfg.Dataset.PlotColumn)
	cfg.Dataset.MaxRecords = GetIntEnv("DATASET_MAX_RECORDS", cfg.Dataset.MaxRecords)
	cfg.Dataset.DataDir = GetStringEnv("DATASET_DATA_DIR", cfg.Dataset.DataDir)

	cfg.Search.DefaultTopN = GetIntEnv("SEARCH_DEFAULT_TOP_N", cfg.Search.DefaultTopN)
	cfg.Search.MaxTopN = GetIntEnv("SEARCH_MAX_TOP_N", cfg.Search.MaxTopN)
	cfg.Search.SnippetLength = GetIntEnv("SEARCH_SNIPPET_LENGTH", cfg.Search.SnippetLength)

	cfg.LLM.Provider = GetStringEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.BaseURL = GetStringEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = GetStringEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = GetStringEnv("LLM_API_KEY", cfg.LLM.APIKey)
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
