package qrbill

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fontSet, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parse bold font: %w", err)
	}
	return fontSet{regular: regular, bold: bold}, nil
})

type faceKey struct {
	size float64
	bold bool
}

// PNGCanvas rasterises onto an in-memory bitmap at a fixed resolution using
// the bundled Go fonts.
type PNGCanvas struct {
	dpi   float64
	scale float64 // pixels per millimetre
	fonts fontSet
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func NewPNGCanvas(dpi int) (*PNGCanvas, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid resolution %d dpi", dpi)
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &PNGCanvas{
		dpi:   float64(dpi),
		scale: float64(dpi) / 25.4,
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}, nil
}

func (c *PNGCanvas) Setup(width, height float64) error {
	if c.faces == nil {
		return errCanvasClosed
	}
	w := int(math.Ceil(width * c.scale))
	h := int(math.Ceil(height * c.scale))
	c.dc = gg.NewContext(w, h)
	c.dc.SetRGB(1, 1, 1)
	c.dc.Clear()
	return nil
}

func (c *PNGCanvas) Text(x, y float64, text string, size float64, bold bool) {
	if c.dc == nil {
		return
	}
	c.dc.SetFontFace(c.face(size, bold))
	c.dc.SetRGB(0, 0, 0)
	c.dc.DrawString(text, x*c.scale, y*c.scale)
}

func (c *PNGCanvas) FillRect(x, y, width, height float64, col Color) {
	if c.dc == nil {
		return
	}
	c.setColor(col)
	c.dc.DrawRectangle(x*c.scale, y*c.scale, width*c.scale, height*c.scale)
	c.dc.Fill()
}

func (c *PNGCanvas) Line(x1, y1, x2, y2, width float64, dashed bool) {
	if c.dc == nil {
		return
	}
	c.setColor(Black)
	c.dc.SetLineWidth(width * c.scale)
	if dashed {
		c.dc.SetDash(width*4*c.scale, width*4*c.scale)
	} else {
		c.dc.SetDash()
	}
	c.dc.DrawLine(x1*c.scale, y1*c.scale, x2*c.scale, y2*c.scale)
	c.dc.Stroke()
	c.dc.SetDash()
}

func (c *PNGCanvas) Bytes() ([]byte, error) {
	if c.dc == nil {
		return nil, errCanvasClosed
	}
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Close drops the bitmap and the font faces. It is safe to call twice.
func (c *PNGCanvas) Close() error {
	var firstErr error
	for k, f := range c.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.faces, k)
	}
	c.faces = nil
	c.dc = nil
	return firstErr
}

func (c *PNGCanvas) face(size float64, bold bool) font.Face {
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	ttf := c.fonts.regular
	if bold {
		ttf = c.fonts.bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: c.dpi, Hinting: font.HintingFull})
	c.faces[key] = f
	return f
}

func (c *PNGCanvas) setColor(col Color) {
	if col == White {
		c.dc.SetRGB(1, 1, 1)
		return
	}
	c.dc.SetRGB(0, 0, 0)
}
