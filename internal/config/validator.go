package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.LLM.Key == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.key",
			Message: "OPENAI_API_KEY is required",
		})
	}

	if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid base URL",
		})
	}

	if c.RAG.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "rag.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.RAG.ChunkOverlap < 0 || c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "rag.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	if c.RAG.TopK < 1 {
		errors = append(errors, ValidationError{
			Field:   "rag.top_k",
			Message: "top_k must be positive",
		})
	}

	if c.RAG.FetchK < c.RAG.TopK {
		errors = append(errors, ValidationError{
			Field:   "rag.fetch_k",
			Message: "fetch_k must be at least top_k",
		})
	}

	if c.RAG.MMRLambda < 0 || c.RAG.MMRLambda > 1 {
		errors = append(errors, ValidationError{
			Field:   "rag.mmr_lambda",
			Message: "mmr_lambda must be between 0 and 1",
		})
	}

	return errors
}
