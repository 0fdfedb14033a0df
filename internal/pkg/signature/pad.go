package signature

import (
	"bytes"
	"image"
	"sync"

	"github.com/fogleman/gg"
)

const DefaultPenWidth = 2.0

type Point struct {
	X, Y float64
}

// Pad is an in-memory signature canvas. Coordinates are in CSS pixels; the
// backing raster is pixelRatio times larger so signatures stay sharp on
// high-density displays.
type Pad struct {
	mu sync.Mutex

	width, height int
	ratio         float64
	penWidth      float64

	dc      *gg.Context
	strokes int
}

// NewPad creates a blank pad. The context is scaled by pixelRatio once here;
// Clear keeps that transform. Ratios below 1 are treated as 1.
func NewPad(width, height int, pixelRatio float64) *Pad {
	if pixelRatio < 1 {
		pixelRatio = 1
	}
	p := &Pad{
		width:    width,
		height:   height,
		ratio:    pixelRatio,
		penWidth: DefaultPenWidth,
		dc:       gg.NewContext(int(float64(width)*pixelRatio), int(float64(height)*pixelRatio)),
	}
	p.dc.Scale(pixelRatio, pixelRatio)
	p.blank()
	return p
}

func (p *Pad) blank() {
	p.dc.SetRGBA(0, 0, 0, 0)
	p.dc.Clear()
	p.dc.SetRGB(0, 0, 0)
	p.strokes = 0
}

// Bounds is the size of the backing raster in device pixels.
func (p *Pad) Bounds() image.Rectangle {
	return p.dc.Image().Bounds()
}

// Stroke draws one continuous pen movement. A single point leaves a dot.
func (p *Pad) Stroke(points ...Point) {
	if len(points) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(points) == 1 {
		p.dc.DrawPoint(points[0].X, points[0].Y, p.penWidth/2*p.ratio)
		p.dc.Fill()
	} else {
		p.dc.SetLineWidth(p.penWidth * p.ratio)
		p.dc.SetLineCapRound()
		p.dc.SetLineJoinRound()
		p.dc.MoveTo(points[0].X, points[0].Y)
		for _, pt := range points[1:] {
			p.dc.LineTo(pt.X, pt.Y)
		}
		p.dc.Stroke()
	}
	p.strokes++
}

func (p *Pad) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.strokes == 0
}

func (p *Pad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blank()
}

// Export returns the drawing as a PNG data URL, or "" when nothing was drawn.
func (p *Pad) Export() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.strokes == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return "", err
	}
	return Encode(MIMEPNG, buf.Bytes()), nil
}
