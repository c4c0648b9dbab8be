package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr    string `yaml:"addr"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"server"`

	LLM struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
		Key     string `yaml:"-"`
	} `yaml:"llm"`

	Embedding struct {
		Model string `yaml:"model"`
	} `yaml:"embedding"`

	RAG struct {
		ChunkSize    int     `yaml:"chunk_size"`
		ChunkOverlap int     `yaml:"chunk_overlap"`
		TopK         int     `yaml:"top_k"`
		FetchK       int     `yaml:"fetch_k"`
		MMRLambda    float32 `yaml:"mmr_lambda"`
	} `yaml:"rag"`
}

// IndexDir is the persistence directory of the vector index, fixed
// relative to the data dir.
func (c *Config) IndexDir() string {
	return filepath.Join(c.Server.DataDir, "chat_retrieval_db")
}

// LoadConfig reads the yaml config at path on top of the built-in
// defaults, then applies environment overrides. Defaults are seeded
// before unmarshalling, so explicit zero values in the file
// (chunk_overlap: 0, mmr_lambda: 0) stay zero instead of being
// mistaken for unset fields.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	mergeWithEnv(cfg)

	return cfg, nil
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.DataDir = "data"
	cfg.LLM.BaseURL = "https://api.openai.com/v1"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Embedding.Model = "text-embedding-3-small"
	cfg.RAG.ChunkSize = 1000
	cfg.RAG.ChunkOverlap = 100
	cfg.RAG.TopK = 4
	cfg.RAG.FetchK = 20
	cfg.RAG.MMRLambda = 0.5
	return &cfg
}

func mergeWithEnv(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.Key = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
}
