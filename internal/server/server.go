package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdfchat/internal/chunker"
	"pdfchat/internal/config"
	"pdfchat/internal/conversation"
	"pdfchat/internal/ingest"
	"pdfchat/internal/rag"
)

const sessionCookie = "session_id"

// PageExtractor turns a saved PDF into its page sequence.
type PageExtractor interface {
	Pages(path string) ([]ingest.Page, error)
}

// Splitter chunks a batch of pages into passages.
type Splitter interface {
	Split(pages []ingest.Page) ([]chunker.Passage, error)
}

// Pipeline is the RAG core the shell orchestrates.
type Pipeline interface {
	IndexPassages(ctx context.Context, passages []chunker.Passage) error
	Answer(ctx context.Context, question string) (*rag.Result, error)
}

// Server wires upload events into the ingest → chunk → index pipeline
// and chat events into retrieve → answer → session store. Conversation
// state is held per session, keyed by a session cookie.
type Server struct {
	cfg       *config.Config
	extractor PageExtractor
	splitter  Splitter
	pipeline  Pipeline

	mu          sync.Mutex
	sessions    map[string]*conversation.Store
	lastIndexed string
}

func New(cfg *config.Config, extractor PageExtractor, splitter Splitter, pipeline Pipeline) *Server {
	return &Server{
		cfg:       cfg,
		extractor: extractor,
		splitter:  splitter,
		pipeline:  pipeline,
		sessions:  make(map[string]*conversation.Store),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	{
		api.POST("/upload", s.handleUpload)
		api.POST("/chat", s.handleChat)
		api.GET("/history", s.handleHistory)
		api.GET("/export", s.handleExport)
	}

	return r
}

// session returns the conversation store of the calling browser
// session, creating the store and the cookie on first contact.
func (s *Server) session(c *gin.Context) *conversation.Store {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.sessions[id]
	if !ok {
		store = conversation.NewStore()
		s.sessions[id] = store
	}
	return store
}

// batchFingerprint identifies an uploaded file set by content, so an
// unchanged batch can skip re-embedding.
func batchFingerprint(digests map[string]string) string {
	entries := make([]string, 0, len(digests))
	for name, digest := range digests {
		entries = append(entries, name+":"+digest)
	}
	sort.Strings(entries)
	sum := sha256.Sum256([]byte(strings.Join(entries, "\n")))
	return hex.EncodeToString(sum[:])
}
