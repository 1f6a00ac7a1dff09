package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

const (
	pageWidth   = 210.0 // A4 portrait, mm
	imageWidth  = 170.0
	lineHeight  = 6.0
	titleHeight = 10.0
)

// Section is one renderable block of the PDF report. Sections are value
// types; the document accumulates them and renders everything in one pass,
// so a render failure never leaves a half-written file behind.
type Section struct {
	// Title is printed in bold above the body; empty means no heading
	Title string

	// Body is free paragraph text
	Body string

	// ImagePath embeds a PNG centered on the page
	ImagePath string

	// ImageError substitutes an inline message where an image could not
	// be rendered
	ImageError string

	// Table renders a fixed-width grid
	Table *TableData

	// PageBreak starts a new page before the section
	PageBreak bool
}

// TableData is a header row plus data rows with per-column widths in mm.
type TableData struct {
	Widths []float64
	Header []string
	Rows   [][]string
}

// Document is an ordered list of sections under one report title.
type Document struct {
	Title    string
	Footer   string
	Sections []Section
}

// Render writes the document to path. The whole document is laid out in
// memory first; path is only touched at the end.
func (doc *Document) Render(path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(150, 5, tr(doc.Footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, titleHeight, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, s := range doc.Sections {
		if s.PageBreak {
			pdf.AddPage()
		}
		renderSection(pdf, tr, s)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrWriteFailed, err),
			"PDFWriter", "Render", "write pdf file")
	}
	return nil
}

func renderSection(pdf *fpdf.Fpdf, tr func(string) string, s Section) {
	if s.Title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, titleHeight, tr(s.Title), "", 1, "L", false, 0, "")
	}
	if s.Body != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, lineHeight, tr(s.Body), "", "L", false)
		pdf.Ln(2)
	}
	if s.ImagePath != "" {
		x := (pageWidth - imageWidth) / 2
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.ImageOptions(s.ImagePath, x, pdf.GetY(), imageWidth, 0, true, opts, 0, "")
		pdf.Ln(4)
	}
	if s.ImageError != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(180, 0, 0)
		pdf.MultiCell(0, lineHeight, tr(s.ImageError), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	if s.Table != nil {
		renderTable(pdf, tr, s.Table)
		pdf.Ln(2)
	}
}

func renderTable(pdf *fpdf.Fpdf, tr func(string) string, t *TableData) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range t.Header {
		pdf.CellFormat(t.Widths[i], lineHeight+1, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range t.Rows {
		for i, cell := range row {
			pdf.CellFormat(t.Widths[i], lineHeight, tr(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
