package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
)

const (
	marginX       = 10.0
	indentX       = 15.0
	lineStep      = 10.0
	textWidth     = 180.0
	cellHeight    = 6.0
	signatureMaxW = 60.0
	signatureMaxH = 25.0
)

// DirectDraw draws a record's sheet straight onto an A4 page with fpdf:
// title, one line per field, wrapped paragraphs, list sections, then the signature.
type DirectDraw struct{}

func (DirectDraw) Render(ctx context.Context, doc model.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := doc.Sheet()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(s.Title, true)
	pdf.SetCreator("hrba-forms", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := 10.0
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(marginX, y, tr(s.Title))
	y += lineStep

	pdf.SetFont("Helvetica", "", 12)
	// row writes text with its baseline at y, wrapping within width, and returns the next baseline
	row := func(x, y, width float64, text string) float64 {
		pdf.SetXY(x, y-cellHeight+1.5)
		pdf.MultiCell(width, cellHeight, tr(text), "", "L", false)
		return math.Max(y+lineStep, pdf.GetY()+lineStep-cellHeight+1.5)
	}

	for _, l := range s.Lines {
		y = row(marginX, y, textWidth, l.Label+": "+l.Value)
	}
	for _, p := range s.Paragraphs {
		y = row(marginX, y, textWidth, p.Heading)
		y = row(marginX, y, textWidth, p.Text)
	}
	for _, l := range s.Lists {
		y = row(marginX, y, textWidth, l.Heading)
		if len(l.Items) == 0 && l.Empty != "" {
			y = row(indentX, y, textWidth-(indentX-marginX), l.Empty)
		}
		for _, item := range l.Items {
			y = row(indentX, y, textWidth-(indentX-marginX), "- "+item)
		}
	}

	if s.Signature != "" {
		y = row(marginX, y, textWidth, "Signature:")
		if err := drawSignature(pdf, s.Signature, marginX, y-cellHeight); err != nil {
			return nil, err
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render: direct draw failed: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: direct draw output failed: %w", err)
	}
	return buf.Bytes(), nil
}

// drawSignature places the signature image at (x, y), scaled to fit the signature box.
func drawSignature(pdf *fpdf.Fpdf, dataURL string, x, y float64) error {
	img, err := signature.Decode(dataURL)
	if err != nil {
		return fmt.Errorf("render: signature: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: img.Format()}
	info := pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(img.Data))
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render: signature image rejected: %w", err)
	}
	if info == nil {
		return fmt.Errorf("render: signature image rejected")
	}
	w, h := info.Extent()
	scale := math.Min(signatureMaxW/w, signatureMaxH/h)
	pdf.ImageOptions("signature", x, y, w*scale, h*scale, false, opts, 0, "")
	return nil
}
