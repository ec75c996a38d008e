// Package render — PDF exporter.
// Lays out each block variant with gofpdf core fonts. Images are not
// embedded; they print as a captioned placeholder line with their URL.
package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/inline"
)

// PDFRenderer renders a Document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// Export converts doc into PDF bytes.
func (r *PDFRenderer) Export(doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Meta.Title, true)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if title := strings.TrimSpace(doc.Meta.Title); title != "" {
		pdf.SetFont("Helvetica", "B", 20)
		w.text(9, title)
		pdf.Ln(3)
	}
	if summary := strings.TrimSpace(doc.Meta.Summary); summary != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.SetTextColor(100, 100, 100)
		w.text(5.5, summary)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	for _, b := range doc.Blocks {
		w.block(b)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing PDF")
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) text(lineHeight float64, s string) {
	w.pdf.MultiCell(0, lineHeight, w.tr(inline.Plain(s)), "", "L", false)
}

func (w *pdfWriter) block(b block.Block) {
	pdf := w.pdf
	switch v := b.(type) {
	case block.Paragraph:
		if strings.TrimSpace(v.Text) == "" {
			return
		}
		pdf.SetFont("Helvetica", "", 11)
		w.text(5.5, strings.TrimSpace(v.Text))
		pdf.Ln(3)

	case block.Heading:
		if strings.TrimSpace(v.Text) == "" {
			return
		}
		size := 16.0
		if block.ParseHeadingLevel(string(v.Level)) == block.H3 {
			size = 13
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", size)
		w.text(size*0.55, strings.TrimSpace(v.Text))
		pdf.Ln(2)

	case block.Quote:
		if strings.TrimSpace(v.Text) == "" {
			return
		}
		left, _, _, _ := pdf.GetMargins()
		pdf.SetLeftMargin(left + 8)
		pdf.SetX(left + 8)
		pdf.SetFont("Helvetica", "I", 11)
		w.text(5.5, strings.TrimSpace(v.Text))
		if author := strings.TrimSpace(v.Author); author != "" {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(100, 100, 100)
			w.text(5, "- "+author)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetLeftMargin(left)
		pdf.SetX(left)
		pdf.Ln(3)

	case block.List:
		pdf.SetFont("Helvetica", "", 11)
		n := 0
		for _, item := range v.Items {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			n++
			marker := "• "
			if v.Style == block.Ordered {
				marker = strconv.Itoa(n) + ". "
			}
			w.text(5.5, marker+item)
		}
		pdf.Ln(3)

	case block.Image:
		if strings.TrimSpace(v.URL) == "" {
			return
		}
		label := strings.TrimSpace(v.Caption)
		if label == "" {
			label = strings.TrimSpace(v.Alt)
		}
		if label == "" {
			label = ImagePlaceholderAlt
		}
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		w.text(4.5, "[Image: "+label+"] "+strings.TrimSpace(v.URL))
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)

	case block.CTA:
		title := strings.TrimSpace(v.Title)
		description := strings.TrimSpace(v.Description)
		label := strings.TrimSpace(v.ButtonLabel)
		url := strings.TrimSpace(v.ButtonURL)
		if title == "" && description == "" && label == "" {
			return
		}
		pdf.SetFillColor(235, 240, 255)
		if title != "" {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, w.tr(inline.Plain(title)), "", "C", true)
		}
		if description != "" {
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5.5, w.tr(inline.Plain(description)), "", "C", true)
		}
		if label != "" && url != "" {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, w.tr(label+" -> "+url), "", "C", true)
		}
		pdf.Ln(4)
	}
}
