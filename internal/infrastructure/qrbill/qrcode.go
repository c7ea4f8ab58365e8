package qrbill

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const (
	qrCodeSize     = 46.0 // mm, without quiet zone
	swissCrossSize = 7.0
)

type qrCode struct {
	modules [][]bool
}

func newQRCode(payload string) (*qrCode, error) {
	code, err := qr.New(payload, qr.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	code.DisableBorder = true
	return &qrCode{modules: code.Bitmap()}, nil
}

// draw paints the symbol at (x, y) merging horizontal runs of dark modules
// into single rectangles, then overlays the Swiss cross.
func (q *qrCode) draw(c Canvas, x, y float64) {
	n := len(q.modules)
	if n == 0 {
		return
	}
	module := qrCodeSize / float64(n)

	for row := 0; row < n; row++ {
		for col := 0; col < n; {
			if !q.modules[row][col] {
				col++
				continue
			}
			start := col
			for col < n && q.modules[row][col] {
				col++
			}
			// slight overlap avoids hairline gaps between rows in raster output
			c.FillRect(x+float64(start)*module, y+float64(row)*module, float64(col-start)*module, module+0.01, Black)
		}
	}

	drawSwissCross(c, x+(qrCodeSize-swissCrossSize)/2, y+(qrCodeSize-swissCrossSize)/2)
}

func drawSwissCross(c Canvas, x, y float64) {
	const (
		border = 0.5
		inner  = swissCrossSize - 2*border
		arm    = inner * 6 / 32
		length = inner * 20 / 32
	)
	c.FillRect(x, y, swissCrossSize, swissCrossSize, White)
	c.FillRect(x+border, y+border, inner, inner, Black)

	cx := x + swissCrossSize/2
	cy := y + swissCrossSize/2
	c.FillRect(cx-arm/2, cy-length/2, arm, length, White)
	c.FillRect(cx-length/2, cy-arm/2, length, arm, White)
}
