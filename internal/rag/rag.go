package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"

	"pdfchat/internal/chunker"
	"pdfchat/internal/config"
	"pdfchat/internal/index"
)

// Embedder computes a fixed-length vector for a piece of text.
// Satisfied by langchaingo's EmbedderImpl.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Source is one retrieved passage cited alongside an answer.
type Source struct {
	Filename string
	Text     string
}

// Result is the outcome of answering one question.
type Result struct {
	Answer  string
	Sources []Source
}

// Pipeline ties the embedder, the vector index and the chat model into
// the two operations the shell needs: indexing an ingestion batch and
// answering a question from the index.
type Pipeline struct {
	embedder Embedder
	store    *index.Store
	model    llms.Model
	topK     int
	fetchK   int
	lambda   float32
}

func NewPipeline(embedder Embedder, store *index.Store, model llms.Model, cfg *config.Config) *Pipeline {
	return &Pipeline{
		embedder: embedder,
		store:    store,
		model:    model,
		topK:     cfg.RAG.TopK,
		fetchK:   cfg.RAG.FetchK,
		lambda:   cfg.RAG.MMRLambda,
	}
}

// IndexPassages embeds every passage of the batch and inserts the
// records into the index. A full rebuild, never incremental: the whole
// current passage set is re-embedded and appended on every call. An
// embedding failure aborts the operation with nothing inserted.
func (p *Pipeline) IndexPassages(ctx context.Context, passages []chunker.Passage) error {
	if len(passages) == 0 {
		log.Info().Msg("no passages to index")
		return nil
	}

	vectors := make([][]float32, len(passages))
	for i, passage := range passages {
		vector, err := p.embedder.EmbedQuery(ctx, passage.Text)
		if err != nil {
			return fmt.Errorf("embedding passage %d: %w", passage.DocID, err)
		}
		vectors[i] = vector
	}

	if err := p.store.Add(ctx, passages, vectors); err != nil {
		return err
	}

	log.Info().Int("passages", len(passages)).Int("index_size", p.store.Count()).
		Msg("indexed batch")
	return nil
}

// Answer retrieves the most relevant diverse passages for the question
// and asks the chat model for a grounded answer. On an empty index it
// returns the fallback answer without embedding the question or calling
// the model.
func (p *Pipeline) Answer(ctx context.Context, question string) (*Result, error) {
	if p.store.Count() == 0 {
		return &Result{Answer: FallbackAnswer}, nil
	}

	queryEmbedding, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	candidates, err := p.store.Search(ctx, queryEmbedding, p.fetchK)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{Answer: FallbackAnswer}, nil
	}

	selected := mmrSelect(candidates, p.topK, p.lambda)

	var contextBlock strings.Builder
	sources := make([]Source, 0, len(selected))
	for _, r := range selected {
		contextBlock.WriteString(r.Content)
		contextBlock.WriteString("\n\n")
		sources = append(sources, Source{
			Filename: r.Metadata["source"],
			Text:     r.Content,
		})
	}

	prompt, err := renderPrompt(contextBlock.String(), question)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := p.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	return &Result{
		Answer:  resp.Choices[0].Content,
		Sources: sources,
	}, nil
}
