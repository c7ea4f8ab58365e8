package qrbill

import "github.com/Xausdorf/qr-bill-hub/internal/domain/bill"

type Color int

const (
	Black Color = iota
	White
)

// Canvas is a drawing surface measured in millimetres with the origin at
// the top left corner. Text positions refer to the baseline, font sizes
// are in points.
type Canvas interface {
	bill.Canvas

	Setup(width, height float64) error
	Text(x, y float64, text string, size float64, bold bool)
	FillRect(x, y, width, height float64, c Color)
	Line(x1, y1, x2, y2, width float64, dashed bool)
}

const mmPerPt = 25.4 / 72
