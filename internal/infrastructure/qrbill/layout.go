package qrbill

import (
	"math"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
)

// Page dimensions of a stand-alone QR-bill in millimetres.
const (
	QRBillWidth  = 210.0
	QRBillHeight = 105.0

	receiptWidth     = 62.0
	margin           = 5.0
	paymentPartX     = receiptWidth + margin
	paymentInfoX     = receiptWidth + 56.0
	receiptTextWidth = receiptWidth - 2*margin
	paymentTextWidth = QRBillWidth - paymentInfoX - margin
	amountSectionY   = 68.0

	titleFontSize            = 11.0
	receiptLabelFontSize     = 6.0
	receiptTextFontSize      = 8.0
	paymentLabelFontSize     = 8.0
	paymentTextFontSize      = 10.0
	separatorWidth           = 0.2
	cornerMarkWidth          = 0.75 * mmPerPt
	cornerMarkLength         = 3.0
	lineHeightFactor         = 1.1
	receiptDebtorBoxHeight   = 20.0
	paymentDebtorBoxHeight   = 25.0
	paymentDebtorBoxWidth    = 65.0
	qrCodeY                  = 17.0
	receiptAmountBoxWidth    = 30.0
	receiptAmountBoxHeight   = 10.0
	paymentAmountBoxWidth    = 40.0
	paymentAmountBoxHeight   = 15.0
	acceptancePointOffsetY   = 82.0
	sectionGapFactor         = 0.9
	receiptAmountColumnWidth = 17.0
	paymentAmountColumnWidth = 20.0

	// receipt information column, between the title and the amount section
	receiptInfoY         = margin + titleFontSize*mmPerPt + 2*margin
	receiptInfoMaxY      = amountSectionY - 1.5
	compactLabelFontSize = 5.0
	compactTextFontSize  = 7.0
	compactGapFactor     = 0.4
)

type layout struct {
	b      *bill.Bill
	c      Canvas
	qr     *qrCode
	labels labels
}

func newLayout(b *bill.Bill, c Canvas, qr *qrCode) *layout {
	return &layout{b: b, c: c, qr: qr, labels: labelsFor(b.Format.Language)}
}

func (l *layout) draw() {
	l.drawSeparators()
	l.drawReceipt()
	l.drawPaymentPart()
}

func (l *layout) drawSeparators() {
	l.c.Line(0, 0, QRBillWidth, 0, separatorWidth, true)
	l.c.Line(receiptWidth, 0, receiptWidth, QRBillHeight, separatorWidth, true)
}

// receiptStyle sets the text metrics of the receipt information column.
type receiptStyle struct {
	labelSize float64
	textSize  float64
	gapFactor float64
}

// Receipt styles in order of preference. The compact one is used when the
// regular one would run into the amount section.
var receiptStyles = []receiptStyle{
	{labelSize: receiptLabelFontSize, textSize: receiptTextFontSize, gapFactor: sectionGapFactor},
	{labelSize: compactLabelFontSize, textSize: compactTextFontSize, gapFactor: compactGapFactor},
}

func (l *layout) drawReceipt() {
	y := margin + lineHeight(titleFontSize)
	l.c.Text(margin, y, l.labels.receipt, titleFontSize, true)

	style := receiptStyles[len(receiptStyles)-1]
	for _, s := range receiptStyles {
		if l.receiptInfo(nopCanvas{}, s, math.Inf(1)) <= receiptInfoMaxY {
			style = s
			break
		}
	}
	// whatever still does not fit is cut off at the budget
	l.receiptInfo(l.c, style, receiptInfoMaxY)

	l.drawAmountSection(margin, receiptAmountColumnWidth, receiptLabelFontSize, receiptTextFontSize,
		receiptWidth-margin-receiptAmountBoxWidth, receiptAmountBoxWidth, receiptAmountBoxHeight)

	label := l.labels.acceptancePoint
	lx := receiptWidth - margin - textWidth(label, receiptLabelFontSize, true)
	l.c.Text(lx, acceptancePointOffsetY+lineHeight(receiptLabelFontSize), label, receiptLabelFontSize, true)
}

// receiptInfo writes account, reference and payer blocks of the receipt
// and returns the lowest y it used.
func (l *layout) receiptInfo(c Canvas, s receiptStyle, maxY float64) float64 {
	w := &textWriter{c: c, x: margin, y: receiptInfoY, width: receiptTextWidth, maxY: maxY,
		labelSize: s.labelSize, textSize: s.textSize, gapFactor: s.gapFactor}
	w.label(l.labels.accountPayableTo)
	w.lines(bill.FormatIBAN(l.b.Account))
	w.address(&l.b.Creditor)
	w.gap()

	if l.b.Reference != "" {
		w.label(l.labels.reference)
		w.lines(l.b.FormattedReference())
		w.gap()
	}

	if l.b.Debtor != nil {
		w.label(l.labels.payableBy)
		w.address(l.b.Debtor)
	} else {
		w.label(l.labels.payableByBlank)
		w.box(receiptTextWidth, receiptDebtorBoxHeight)
	}
	return w.y
}

func (l *layout) drawPaymentPart() {
	y := margin + lineHeight(titleFontSize)
	l.c.Text(paymentPartX, y, l.labels.paymentPart, titleFontSize, true)

	l.qr.draw(l.c, paymentPartX, qrCodeY)

	l.drawAmountSection(paymentPartX, paymentAmountColumnWidth, paymentLabelFontSize, paymentTextFontSize,
		paymentInfoX-margin-paymentAmountBoxWidth, paymentAmountBoxWidth, paymentAmountBoxHeight)

	w := &textWriter{c: l.c, x: paymentInfoX, y: margin, width: paymentTextWidth, maxY: QRBillHeight - margin,
		labelSize: paymentLabelFontSize, textSize: paymentTextFontSize, gapFactor: sectionGapFactor}
	w.label(l.labels.accountPayableTo)
	w.lines(bill.FormatIBAN(l.b.Account))
	w.address(&l.b.Creditor)
	w.gap()

	if l.b.Reference != "" {
		w.label(l.labels.reference)
		w.lines(l.b.FormattedReference())
		w.gap()
	}

	if l.b.UnstructuredMessage != "" {
		w.label(l.labels.additionalInfo)
		w.lines(l.b.UnstructuredMessage)
		w.gap()
	}

	if l.b.Debtor != nil {
		w.label(l.labels.payableBy)
		w.address(l.b.Debtor)
	} else {
		w.label(l.labels.payableByBlank)
		w.box(paymentDebtorBoxWidth, paymentDebtorBoxHeight)
	}
}

// drawAmountSection prints currency and amount, or a blank field with
// corner marks when the amount is left open.
func (l *layout) drawAmountSection(x, columnWidth, labelSize, textSize, boxX, boxWidth, boxHeight float64) {
	y := amountSectionY + lineHeight(labelSize)
	l.c.Text(x, y, l.labels.currency, labelSize, true)
	l.c.Text(x+columnWidth, y, l.labels.amount, labelSize, true)

	y += lineHeight(textSize) * lineHeightFactor
	l.c.Text(x, y, l.b.Currency, textSize, false)
	if l.b.HasAmount() {
		l.c.Text(x+columnWidth, y, bill.FormatAmountForDisplay(l.b.Amount.Decimal), textSize, false)
		return
	}
	drawCornerMarks(l.c, boxX, y-lineHeight(textSize)+1, boxWidth, boxHeight)
}

func drawCornerMarks(c Canvas, x, y, width, height float64) {
	const n = cornerMarkLength
	right, bottom := x+width, y+height

	c.Line(x, y, x+n, y, cornerMarkWidth, false)
	c.Line(x, y, x, y+n, cornerMarkWidth, false)
	c.Line(right-n, y, right, y, cornerMarkWidth, false)
	c.Line(right, y, right, y+n, cornerMarkWidth, false)
	c.Line(x, bottom, x+n, bottom, cornerMarkWidth, false)
	c.Line(x, bottom-n, x, bottom, cornerMarkWidth, false)
	c.Line(right-n, bottom, right, bottom, cornerMarkWidth, false)
	c.Line(right, bottom-n, right, bottom, cornerMarkWidth, false)
}

func lineHeight(size float64) float64 {
	return size * mmPerPt
}

// textWriter lays out labelled text blocks top to bottom in a column.
// Nothing is drawn below maxY; lines that would cross it are dropped.
type textWriter struct {
	c         Canvas
	x, y      float64
	width     float64
	maxY      float64
	labelSize float64
	textSize  float64
	gapFactor float64
}

func (w *textWriter) label(text string) {
	w.y += lineHeight(w.labelSize) * lineHeightFactor
	if w.y <= w.maxY {
		w.c.Text(w.x, w.y, text, w.labelSize, true)
	}
	w.y += 0.5
}

func (w *textWriter) lines(text string) {
	for _, line := range wrapText(text, w.width, w.textSize, false) {
		w.y += lineHeight(w.textSize) * lineHeightFactor
		if w.y <= w.maxY {
			w.c.Text(w.x, w.y, line, w.textSize, false)
		}
	}
}

func (w *textWriter) address(a *bill.Address) {
	w.lines(a.Name)
	w.lines(a.AddressLine1)
	w.lines(a.AddressLine2)
}

// box leaves a blank field with corner marks for the payer to fill in.
func (w *textWriter) box(width, height float64) {
	top := w.y + 1
	if top+height <= w.maxY {
		drawCornerMarks(w.c, w.x, top, width, height)
	}
	w.y = top + height
}

func (w *textWriter) gap() {
	w.y += lineHeight(w.textSize) * w.gapFactor
}

// nopCanvas measures layouts without drawing.
type nopCanvas struct{}

func (nopCanvas) Bytes() ([]byte, error)                         { return nil, nil }
func (nopCanvas) Close() error                                   { return nil }
func (nopCanvas) Setup(_, _ float64) error                       { return nil }
func (nopCanvas) Text(_, _ float64, _ string, _ float64, _ bool) {}
func (nopCanvas) FillRect(_, _, _, _ float64, _ Color)           {}
func (nopCanvas) Line(_, _, _, _, _ float64, _ bool)             {}
