package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/logo.png
var logoPNG []byte

var funcs = template.FuncMap{
	"formatDate": FormatDate,
	"formatTime": FormatTime,
	"yesNo": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
	"logoURL": func() template.URL {
		return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(logoPNG))
	},
	// only well-formed image data URLs are trusted as img sources
	"signatureURL": func(s string) template.URL {
		if _, err := signature.Decode(s); err != nil {
			return ""
		}
		return template.URL(s)
	},
}

// Template fills the HTML template of a record's kind and hands it to a Rasterizer.
type Template struct {
	Rasterizer Rasterizer

	pages map[string]*template.Template
}

func NewTemplate(r Rasterizer) (*Template, error) {
	t := &Template{Rasterizer: r, pages: map[string]*template.Template{}}
	for _, kind := range []string{model.KindTribunal, model.KindReimbursement} {
		page, err := template.New(kind).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+kind+".html")
		if err != nil {
			return nil, fmt.Errorf("render: failed to parse %s template: %w", kind, err)
		}
		t.pages[kind] = page
	}
	return t, nil
}

// Fill returns the filled HTML document for doc.
func (t *Template) Fill(doc model.Document) (string, error) {
	page, ok := t.pages[doc.Kind()]
	if !ok {
		return "", fmt.Errorf("render: no template for %q", doc.Kind())
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", doc); err != nil {
		return "", fmt.Errorf("render: failed to fill %s template: %w", doc.Kind(), err)
	}
	return buf.String(), nil
}

func (t *Template) Render(ctx context.Context, doc model.Document) ([]byte, error) {
	html, err := t.Fill(doc)
	if err != nil {
		return nil, err
	}
	return t.Rasterizer.Rasterize(ctx, html)
}
