package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Field is a label/value line printed above or below the table.
type Field struct {
	Label string
	Value string
}

// Document describes a single-table PDF such as an invoice.
type Document struct {
	Title   string
	Header  []Field
	Table   Dataset
	Widths  []float64
	Summary []Field
}

// PDFExporter renders documents with gofpdf.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

const pageWidth = 190.0

// Render lays out title, header fields, table and summary on A4 portrait.
func (e *PDFExporter) Render(doc Document) ([]byte, error) {
	if len(doc.Table.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	widths := doc.Widths
	if len(widths) != len(doc.Table.Headers) {
		widths = make([]float64, len(doc.Table.Headers))
		for i := range widths {
			widths[i] = pageWidth / float64(len(widths))
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "", 10)
	for _, f := range doc.Header {
		pdf.CellFormat(40, 6, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(f.Value), "", 1, "L", false, 0, "")
	}
	if len(doc.Header) > 0 {
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range doc.Table.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range doc.Table.Rows {
		for i, header := range doc.Table.Headers {
			pdf.CellFormat(widths[i], 7, tr(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(doc.Summary) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 10)
		for _, f := range doc.Summary {
			pdf.CellFormat(pageWidth-40, 7, tr(f.Label), "", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, tr(f.Value), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
