package qrbill

import (
	"errors"
	"fmt"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
)

var ErrUnsupportedCanvas = errors.New("unsupported canvas")

// Generator renders validated bills as SVG documents or onto raster canvases.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateSVG(b *bill.Bill) ([]byte, error) {
	c := NewSVGCanvas(b.Format.FontFamily)
	defer func() { _ = c.Close() }()

	if err := g.Draw(b, c); err != nil {
		return nil, err
	}
	return c.Bytes()
}

func (g *Generator) NewRasterCanvas(f bill.Format) (bill.Canvas, error) {
	return NewPNGCanvas(f.DPI)
}

// Draw validates the bill and paints the complete slip onto c. Validation
// failures are returned as *bill.ValidationError.
func (g *Generator) Draw(b *bill.Bill, c bill.Canvas) error {
	dc, ok := c.(Canvas)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedCanvas, c)
	}

	valid, err := b.Validate()
	if err != nil {
		return err
	}

	code, err := newQRCode(EncodePayload(valid))
	if err != nil {
		return err
	}

	if err := dc.Setup(QRBillWidth, QRBillHeight); err != nil {
		return fmt.Errorf("setup canvas: %w", err)
	}
	newLayout(valid, dc, code).draw()
	return nil
}
