package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFontSize  = 8
	pdfRowHeight = 6
)

func renderPDF(t Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, tr(t.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(t.Headers))
	breakY := pageH - bottom - pdfRowHeight

	header := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfRowHeight, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}
	header()

	for _, row := range t.Rows {
		if pdf.GetY() > breakY {
			pdf.AddPage()
			pdf.SetY(top)
			header()
		}
		for _, cell := range row {
			pdf.CellFormat(colW, pdfRowHeight, tr(truncate(cell, colW, pdf)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate trims cell text that would overflow its column, with an
// ellipsis. Cell borders do not clip in fpdf, long values would bleed
// into the neighbor cell otherwise.
func truncate(s string, colW float64, pdf *fpdf.Fpdf) string {
	limit := colW - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
