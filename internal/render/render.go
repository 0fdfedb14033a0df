// Package render turns submissions into PDF documents.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DS-LIT/hrba-forms/internal/model"
)

var (
	// ErrEmptyDocument is returned when a strategy produced zero bytes.
	ErrEmptyDocument = errors.New("render: empty document")

	// ErrInvalidDocument is returned when the produced bytes do not parse as a PDF.
	ErrInvalidDocument = errors.New("render: invalid document")
)

type Renderer interface {
	Render(ctx context.Context, doc model.Document) ([]byte, error)
}

// Rasterizer prints a complete HTML document to PDF.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

type Strategy string

const (
	StrategyTemplate Strategy = "template"
	StrategyDirect   Strategy = "direct"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyTemplate, StrategyDirect:
		return st, nil
	default:
		return "", fmt.Errorf("render: unknown strategy %q: expect template or direct", s)
	}
}

// New builds the renderer for strategy, wrapped in Verified. The rasterizer is
// only used by the template strategy.
func New(strategy Strategy, rasterizer Rasterizer) (*Verified, error) {
	var next Renderer
	switch strategy {
	case StrategyDirect:
		next = &DirectDraw{}
	case StrategyTemplate:
		if rasterizer == nil {
			return nil, errors.New("render: template strategy needs a rasterizer")
		}
		t, err := NewTemplate(rasterizer)
		if err != nil {
			return nil, err
		}
		next = t
	default:
		return nil, fmt.Errorf("render: unknown strategy %q", strategy)
	}

	return &Verified{Next: next, Strategy: strategy}, nil
}
