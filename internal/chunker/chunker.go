package chunker

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"pdfchat/internal/ingest"
)

const defaultSource = "pdf"

// Passage is the atomic unit stored and retrieved by the vector index:
// a bounded-length span of page text plus provenance metadata. DocID is
// a contiguous 0-based sequence over all passages of one ingestion
// batch.
type Passage struct {
	Text   string
	Source string
	DocID  int
}

// Splitter splits page text into overlapping passages with a recursive
// strategy: paragraph breaks first, then line breaks, sentence
// terminators, spaces and finally single characters, preferring the
// coarsest separator that still respects the length bound. The empty
// final separator forces hard character cuts, so the bound is strict.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

func New(chunkSize, chunkOverlap int) Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 100
	}
	return Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ".", " ", ""}),
		),
	}
}

// Split chunks the full ordered page sequence of one ingestion batch.
func (s Splitter) Split(pages []ingest.Page) ([]Passage, error) {
	var passages []Passage
	for _, page := range pages {
		chunks, err := s.inner.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("splitting page %d of %s: %w", page.Number, page.Source, err)
		}
		source := page.Source
		if source == "" {
			source = defaultSource
		}
		for _, chunk := range chunks {
			passages = append(passages, Passage{
				Text:   chunk,
				Source: source,
				DocID:  len(passages),
			})
		}
	}
	return passages, nil
}
