// Package pdftext pulls plain text out of rendered PDFs.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Pages returns the plain text of every page, in order.
func Pages(data []byte) (pages []string, err error) {
	// the reader panics on some malformed xref tables instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdftext: unreadable document: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdftext: failed to open PDF: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("pdftext: failed to extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Extract returns the text of all pages separated by form feeds.
func Extract(data []byte) (string, error) {
	pages, err := Pages(data)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\f"), nil
}
