package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/ghuser/indentd/services/indent/domain/models"
)

const (
	colItemWidth = 90
	colQtyWidth  = 15
	colUnitWidth = 25
	colNoteWidth = 60

	lineHeight = 6
)

// PDFRenderer produces the printable document for a submitted indent.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render builds the indent document and returns its raw PDF bytes.
func (r *PDFRenderer) Render(indent *models.Indent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	r.writeHeader(pdf, indent)
	r.writeTable(pdf, indent)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render indent %s: %w", indent.MRN, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) writeHeader(pdf *fpdf.Fpdf, indent *models.Indent) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Material Indent Request", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(95, 7, "MRN: "+orNA(indent.MRN), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Date Required: "+orNA(indent.RequiredDate), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Department: "+orNA(indent.Department), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Requested By: "+orNA(indent.RequestedBy), "", 1, "R", false, 0, "")
	pdf.Ln(7)
}

func (r *PDFRenderer) writeTable(pdf *fpdf.Fpdf, indent *models.Indent) {
	r.writeColumnHeadings(pdf)

	pdf.SetFont("Helvetica", "", 9)
	var category, subCategory string
	for _, line := range indent.Lines {
		if !strings.EqualFold(line.Category, category) {
			category = line.Category
			subCategory = ""
			r.writeGroupHeading(pdf, category, 10, 240)
		}
		if !strings.EqualFold(line.SubCategory, subCategory) {
			subCategory = line.SubCategory
			r.writeGroupHeading(pdf, "  "+subCategory, 9, 248)
		}
		r.writeRow(pdf, line)
	}
}

func (r *PDFRenderer) writeColumnHeadings(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colItemWidth, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colQtyWidth, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colUnitWidth, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colNoteWidth, 7, "Note", "1", 1, "C", true, 0, "")
}

func (r *PDFRenderer) writeGroupHeading(pdf *fpdf.Fpdf, label string, size float64, grey int) {
	pdf.SetFont("Helvetica", "B", size)
	pdf.SetFillColor(grey, grey, grey)
	pdf.CellFormat(tableWidth(), lineHeight, label, "LR", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
}

// writeRow lays the four cells of one line side by side. Each cell wraps
// independently via MultiCell, so after writing all four the side and bottom
// borders are redrawn to the height of the tallest cell.
func (r *PDFRenderer) writeRow(pdf *fpdf.Fpdf, line models.IndentLine) {
	left, _, _, _ := pdf.GetMargins()
	startY := pdf.GetY()
	maxY := startY + lineHeight

	x := left
	pdf.SetXY(x, startY)
	pdf.MultiCell(colItemWidth, lineHeight, line.ItemName, "LR", "L", false)
	maxY = maxFloat(maxY, pdf.GetY())

	x += colItemWidth
	pdf.SetXY(x, startY)
	pdf.MultiCell(colQtyWidth, lineHeight, line.Quantity.String(), "R", "C", false)
	maxY = maxFloat(maxY, pdf.GetY())

	x += colQtyWidth
	pdf.SetXY(x, startY)
	pdf.MultiCell(colUnitWidth, lineHeight, line.Unit, "R", "C", false)
	maxY = maxFloat(maxY, pdf.GetY())

	x += colUnitWidth
	note := line.Note
	if strings.TrimSpace(note) == "" {
		note = "-"
	}
	pdf.SetXY(x, startY)
	pdf.MultiCell(colNoteWidth, lineHeight, note, "R", "L", false)
	maxY = maxFloat(maxY, pdf.GetY())

	for _, offset := range []float64{0, colItemWidth, colItemWidth + colQtyWidth, colItemWidth + colQtyWidth + colUnitWidth, tableWidth()} {
		pdf.Line(left+offset, startY, left+offset, maxY)
	}
	pdf.Line(left, maxY, left+tableWidth(), maxY)
	pdf.SetY(maxY)
}

func tableWidth() float64 {
	return colItemWidth + colQtyWidth + colUnitWidth + colNoteWidth
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
