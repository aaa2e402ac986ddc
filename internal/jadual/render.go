package jadual

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 12.0
	rowHeight    = 6.2
	headerHeight = 7.5
	dateColWidth = 36.0
)

// Renderer draws a Document as an A4 portrait PDF.
type Renderer struct {
	Compress bool
}

func (r Renderer) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+4)

	at := generatedAt(doc.Period)
	pdf.SetCreationDate(at)
	pdf.SetModificationDate(at)
	pdf.SetTitle(fmt.Sprintf("%s %s %s", doc.Title, doc.ZoneCode, doc.Heading), true)
	pdf.SetAuthor(doc.Branding, true)
	pdf.SetCreator(doc.Branding, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin - 2)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, tr(doc.Branding), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, tr(doc.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(doc.Heading), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, tr(doc.ZoneCode), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(contentW, 4.5, tr(doc.ZoneLabel), "", "C", false)
	pdf.Ln(3)

	timeColW := (contentW - dateColWidth) / float64(len(doc.Columns)-1)
	widths := make([]float64, len(doc.Columns))
	for i := range widths {
		widths[i] = timeColW
	}
	widths[0] = dateColWidth

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(22, 101, 52)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range doc.Columns {
			pdf.CellFormat(widths[i], headerHeight, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "", 10)
	}
	header()

	_, pageH := pdf.GetPageSize()
	for n, row := range doc.Rows {
		if pdf.GetY()+rowHeight > pageH-pageMargin-4 {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(236, 245, 239)
		pdf.CellFormat(widths[0], rowHeight, row.Date, "1", 0, "C", fill, 0, "")
		for i, t := range row.Times {
			pdf.CellFormat(widths[i+1], rowHeight, t, "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}
