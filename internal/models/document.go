// ABOUTME: Document and page models produced by the PDF loader
// ABOUTME: A document is identified by its source path and holds per-page text
package models

import "strings"

// Page is the extracted plain text of a single document page.
// Page numbers are 1-based.
type Page struct {
	Source string `json:"source"`
	Page   int    `json:"page"`
	Text   string `json:"text"`
}

// Document is a loaded input file
type Document struct {
	Source string `json:"source"`
	Pages  []Page `json:"pages"`
}

// HasText reports whether any page carries non-whitespace text
func (d *Document) HasText() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return true
		}
	}
	return false
}

// CharCount returns the total number of characters across all pages
func (d *Document) CharCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len([]rune(p.Text))
	}
	return n
}
