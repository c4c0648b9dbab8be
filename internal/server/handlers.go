package server

import (
	"embed"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pdfchat/internal/conversation"
	"pdfchat/internal/ingest"
)

//go:embed static/index.html
var staticFS embed.FS

const sourceExcerptLen = 300

func (s *Server) handleIndex(c *gin.Context) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleUpload runs the ingestion batch: save every uploaded PDF, then
// extract, chunk and index the whole current set. An unchanged batch
// (same filenames, same content) skips the embed+index step.
func (s *Server) handleUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	paths := make([]string, 0, len(files))
	digests := make(map[string]string, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		path, digest, err := ingest.SaveUpload(s.cfg.Server.DataDir, fh.Filename, f)
		f.Close()
		if err != nil {
			log.Error().Err(err).Str("file", fh.Filename).Msg("saving upload")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		paths = append(paths, path)
		// Keyed by the stored name, so a path prefix in the upload
		// filename cannot split the fingerprint from the file it
		// overwrites.
		digests[filepath.Base(path)] = digest
	}

	fingerprint := batchFingerprint(digests)
	s.mu.Lock()
	unchanged := fingerprint == s.lastIndexed
	s.mu.Unlock()
	if unchanged {
		log.Debug().Int("files", len(paths)).Msg("upload batch unchanged, skipping re-index")
		c.JSON(http.StatusOK, gin.H{"indexed": false, "files": len(paths), "passages": 0})
		return
	}

	var pages []ingest.Page
	for _, path := range paths {
		filePages, err := s.extractor.Pages(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("extracting pages")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pages = append(pages, filePages...)
	}

	passages, err := s.splitter.Split(pages)
	if err != nil {
		log.Error().Err(err).Msg("splitting pages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.pipeline.IndexPassages(c.Request.Context(), passages); err != nil {
		log.Error().Err(err).Msg("indexing passages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.lastIndexed = fingerprint
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"indexed": true, "files": len(paths), "passages": len(passages)})
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

type sourceView struct {
	Filename string `json:"filename"`
	Excerpt  string `json:"excerpt"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := s.session(c)
	store.Append(conversation.RoleUser, req.Question)

	result, err := s.pipeline.Answer(c.Request.Context(), req.Question)
	if err != nil {
		log.Error().Err(err).Str("question", req.Question).Msg("answering question")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	store.Append(conversation.RoleAssistant, result.Answer)

	sources := make([]sourceView, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, sourceView{
			Filename: src.Filename,
			Excerpt:  excerpt(src.Text, sourceExcerptLen),
		})
	}

	c.JSON(http.StatusOK, gin.H{"answer": result.Answer, "sources": sources})
}

func (s *Server) handleHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"turns": s.session(c).Turns()})
}

func (s *Server) handleExport(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="chat.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(s.session(c).Export()))
}

// excerpt keeps the first n runes of a passage, the slice the citation
// display shows.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
