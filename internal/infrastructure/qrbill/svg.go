package qrbill

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errCanvasClosed = errors.New("canvas closed")

// SVGCanvas writes vector output. Coordinates map one to one onto SVG user
// units, which the root element sizes in millimetres.
type SVGCanvas struct {
	fontFamily string
	buf        *bytes.Buffer
	done       bool
}

func NewSVGCanvas(fontFamily string) *SVGCanvas {
	return &SVGCanvas{fontFamily: fontFamily}
}

func (c *SVGCanvas) Setup(width, height float64) error {
	c.buf = &bytes.Buffer{}
	c.done = false
	fmt.Fprintf(c.buf, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(c.buf,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%smm" height="%smm" viewBox="0 0 %s %s">`+"\n",
		num(width), num(height), num(width), num(height))
	fmt.Fprintf(c.buf, `<rect x="0" y="0" width="%s" height="%s" fill="#fff"/>`+"\n", num(width), num(height))
	c.buf.WriteString(`<g font-family="`)
	_ = xml.EscapeText(c.buf, []byte(c.fontFamily))
	c.buf.WriteString(`" fill="#000">` + "\n")
	return nil
}

func (c *SVGCanvas) Text(x, y float64, text string, size float64, bold bool) {
	if c.buf == nil {
		return
	}
	weight := ""
	if bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(c.buf, `<text x="%s" y="%s" font-size="%s"%s>`, num(x), num(y), num(size*mmPerPt), weight)
	_ = xml.EscapeText(c.buf, []byte(text))
	c.buf.WriteString("</text>\n")
}

func (c *SVGCanvas) FillRect(x, y, width, height float64, col Color) {
	if c.buf == nil {
		return
	}
	fill := "#000"
	if col == White {
		fill = "#fff"
	}
	fmt.Fprintf(c.buf, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(width), num(height), fill)
}

func (c *SVGCanvas) Line(x1, y1, x2, y2, width float64, dashed bool) {
	if c.buf == nil {
		return
	}
	dash := ""
	if dashed {
		dash = ` stroke-dasharray="` + num(width*4) + `"`
	}
	fmt.Fprintf(c.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#000" stroke-width="%s"%s/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), num(width), dash)
}

func (c *SVGCanvas) Bytes() ([]byte, error) {
	if c.buf == nil {
		return nil, errCanvasClosed
	}
	if !c.done {
		c.buf.WriteString("</g>\n</svg>\n")
		c.done = true
	}
	return c.buf.Bytes(), nil
}

func (c *SVGCanvas) Close() error {
	c.buf = nil
	return nil
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
