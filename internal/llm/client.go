package llm

import (
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"pdfchat/internal/config"
)

// NewChatModel builds the completion client for answer generation.
func NewChatModel(cfg *config.Config) (*openai.LLM, error) {
	return openai.New(
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.LLM.Key, "Bearer ")),
		openai.WithModel(cfg.LLM.Model),
	)
}

// NewEmbedder builds the embedding client used for both passages and
// queries.
func NewEmbedder(cfg *config.Config) (*embeddings.EmbedderImpl, error) {
	client, err := openai.New(
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.LLM.Key, "Bearer ")),
		openai.WithEmbeddingModel(cfg.Embedding.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(client)
}
