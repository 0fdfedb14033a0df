package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/observability"
)

func init() {
	// keep pdfcpu from creating a config directory under the user's home
	api.DisableConfigDir()
}

// Verified checks what Next produced: zero bytes is ErrEmptyDocument and
// anything pdfcpu cannot read is ErrInvalidDocument.
type Verified struct {
	Next     Renderer
	Strategy Strategy
}

func (v *Verified) Render(ctx context.Context, doc model.Document) ([]byte, error) {
	start := time.Now()
	buf, err := v.Next.Render(ctx, doc)
	observability.RenderDuration.WithLabelValues(string(v.Strategy), doc.Kind()).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, ErrEmptyDocument
	}

	pages, err := Verify(buf)
	if err != nil {
		return nil, err
	}
	observability.RenderedPages.WithLabelValues(doc.Kind()).Observe(float64(pages))

	log.Debug().
		Str("evt.name", "render.verified").
		Str("strategy", string(v.Strategy)).
		Str("kind", doc.Kind()).
		Int("pages", pages).
		Int("bytes", len(buf)).
		Msg("rendered document")

	return buf, nil
}

// Verify validates buf in relaxed mode and returns its page count.
func Verify(buf []byte) (int, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(buf), conf); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	pdfCtx, err := api.ReadContext(bytes.NewReader(buf), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return pdfCtx.PageCount, nil
}
