package qrbill

import "strings"

// Helvetica advance widths for printable ASCII in 1/1000 em. Everything
// else is measured as a digit. Bold text runs roughly 8% wider.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' ' .. '/'
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, // '0' .. '9'
	278, 278, 584, 584, 584, 556, 1015, // ':' .. '@'
	667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, // 'A' .. 'M'
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, // 'N' .. 'Z'
	278, 278, 278, 469, 556, 333, // '[' .. '`'
	556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, // 'a' .. 'm'
	556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, // 'n' .. 'z'
	334, 260, 334, 584, // '{' .. '~'
}

const (
	defaultCharWidth = 556
	boldWidthFactor  = 1.08
)

// textWidth estimates the rendered width of text in millimetres. PNG output
// draws with Go Regular and Go Bold, which run within about 1% of these
// Helvetica widths, so the same wrapping serves both canvases.
func textWidth(text string, size float64, bold bool) float64 {
	units := 0
	for _, r := range text {
		if r >= ' ' && r <= '~' {
			units += helveticaWidths[r-' ']
		} else {
			units += defaultCharWidth
		}
	}
	w := float64(units) / 1000 * size * mmPerPt
	if bold {
		w *= boldWidthFactor
	}
	return w
}

// wrapText splits text into lines no wider than maxWidth, breaking at spaces
// and splitting words that do not fit on a line by themselves.
func wrapText(text string, maxWidth, size float64, bold bool) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, w := range words {
		candidate := w
		if current != "" {
			candidate = current + " " + w
		}
		if textWidth(candidate, size, bold) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = ""
		for _, part := range splitWord(w, maxWidth, size, bold) {
			if current != "" {
				lines = append(lines, current)
			}
			current = part
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func splitWord(word string, maxWidth, size float64, bold bool) []string {
	var parts []string
	runes := []rune(word)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if textWidth(string(runes[start:i]), size, bold) > maxWidth && i-1 > start {
			parts = append(parts, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(parts, string(runes[start:]))
}
