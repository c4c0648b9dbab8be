package index

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"

	"pdfchat/internal/chunker"
)

const (
	collectionName = "chat_retrieval"
	compress       = false
)

// Store wraps a chromem-go collection backed by durable storage. Every
// insert uses a fresh UUID record ID, so indexing is append-only: no
// deduplication, re-indexing the same batch grows the collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewPersistent opens (or creates) the index at dbPath.
func NewPersistent(dbPath string) (*Store, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector database: %w", err)
	}
	return newStore(db)
}

// NewInMemory returns an index without persistence, used in tests.
func NewInMemory() (*Store, error) {
	return newStore(chromem.NewDB())
}

func newStore(db *chromem.DB) (*Store, error) {
	// Embeddings are always precomputed, so no embedding func is wired
	// into the collection.
	c, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %w", err)
	}
	return &Store{db: db, collection: c}, nil
}

// Add inserts one vector record per passage. vectors[i] must be the
// embedding of passages[i].
func (s *Store) Add(ctx context.Context, passages []chunker.Passage, vectors [][]float32) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passage/vector count mismatch: %d != %d", len(passages), len(vectors))
	}
	if len(passages) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(passages))
	for i, p := range passages {
		docs[i] = chromem.Document{
			ID:      uuid.NewString(),
			Content: p.Text,
			Metadata: map[string]string{
				"source": p.Source,
				"doc_id": strconv.Itoa(p.DocID),
			},
			Embedding: vectors[i],
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Count reports the number of records in the collection.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Search returns up to n records by cosine similarity to the query
// embedding. n is capped by the collection size; chromem rejects
// queries asking for more results than it holds.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, n int) ([]chromem.Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       n,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}
	return results, nil
}
