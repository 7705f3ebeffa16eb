// ABOUTME: PDF document loader that extracts plain text page by page
// ABOUTME: Uses ledongthuc/pdf; pages without content are skipped
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/document-assistant/internal/models"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for inputs that are not PDF files
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Supported reports whether the loader can read the file at path
func Supported(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Load reads a PDF and returns its pages. The document source is the path as given.
func Load(path string) (*models.Document, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	doc := &models.Document{Source: path}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := pageText(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d of %s: %w", i, path, err)
		}

		doc.Pages = append(doc.Pages, models.Page{
			Source: path,
			Page:   i,
			Text:   text,
		})
	}

	return doc, nil
}

// pageText extracts a page's text; the pdf package panics on some malformed content streams
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		font := p.Font(name)
		fonts[name] = &font
	}

	return p.GetPlainText(fonts)
}
