package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page holds the extracted text of one physical PDF page.
type Page struct {
	Text   string
	Source string
	Number int
}

// SaveUpload writes an uploaded PDF verbatim to dir/filename and
// returns the saved path with a sha256 digest of the content. An
// existing file with the same name is overwritten silently. Only the
// base of filename is used, so uploads cannot escape the data dir.
func SaveUpload(dir, filename string, r io.Reader) (path, digest string, err error) {
	name := filepath.Base(filename)
	if strings.ToLower(filepath.Ext(name)) != ".pdf" {
		return "", "", fmt.Errorf("unsupported file format: %s", filepath.Ext(name))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating upload dir: %w", err)
	}

	path = filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, hex.EncodeToString(h.Sum(nil)), nil
}

// ExtractPages parses the PDF at path into one Page per physical page.
// The source filename is carried in each page's metadata.
func ExtractPages(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	source := filepath.Base(path)
	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", i, source, err)
		}
		pages = append(pages, Page{
			Text:   pageText,
			Source: source,
			Number: i,
		})
	}
	return pages, nil
}

// Extractor adapts ExtractPages for callers that take the page source
// as a dependency.
type Extractor struct{}

func (Extractor) Pages(path string) ([]Page, error) {
	return ExtractPages(path)
}
