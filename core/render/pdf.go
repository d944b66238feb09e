package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
)

// PDFRenderer lays topics out as a printable manual. Breadcrumbs are
// dropped and links keep only their text.
type PDFRenderer struct {
	engine *markup.Engine
	title  string
}

// NewPDFRenderer creates a PDFRenderer. title is printed on the cover page.
func NewPDFRenderer(engine *markup.Engine, title string) *PDFRenderer {
	return &PDFRenderer{engine: engine, title: title}
}

// Render lays out a single topic.
func (r *PDFRenderer) Render(topic core.Topic) ([]byte, error) {
	return r.Manual([]core.Topic{topic})
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// Manual lays out every topic in order, one topic per page, with a cover
// page and an outline entry per topic.
func (r *PDFRenderer) Manual(topics []core.Topic) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), engine: r.engine}

	if r.title != "" {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 24)
		pdf.Ln(60)
		pdf.MultiCell(0, 12, w.tr(r.title), "", "C", false)
	}

	for _, topic := range topics {
		nodes, err := markup.Parse(topic.Body)
		if err != nil {
			return nil, fmt.Errorf("laying out topic %s: %w", topic.ID, err)
		}
		title, err := r.engine.Title(topic.Body)
		if err != nil {
			return nil, fmt.Errorf("laying out topic %s: %w", topic.ID, err)
		}

		pdf.AddPage()
		pdf.Bookmark(w.tr(title), 0, -1)
		if err := w.nodes(nodes); err != nil {
			return nil, fmt.Errorf("laying out topic %s: %w", topic.ID, err)
		}
		w.flush()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	engine *markup.Engine
	para   strings.Builder
}

func (w *pdfWriter) nodes(nodes []markup.Node) error {
	for _, n := range nodes {
		if err := w.node(n); err != nil {
			return err
		}
	}
	return nil
}

func (w *pdfWriter) node(n markup.Node) error {
	switch n.Kind {
	case markup.KindHeading:
		w.flush()
		renderHeading(w.pdf, w.tr(w.engine.Text(n.Children)), n.Level)
	case markup.KindBar:
		w.flush()
		w.pdf.SetFont("Helvetica", "B", 10)
		w.pdf.MultiCell(0, 5, w.tr(w.engine.Text(n.Children)), "", "L", false)
	case markup.KindNav:
	case markup.KindCodeBlock, markup.KindPre:
		w.flush()
		w.code(strings.Trim(n.Text, "\n"))
	case markup.KindDiagram:
		w.flush()
		text, err := w.engine.Diagram(n.Text)
		if err != nil {
			return fmt.Errorf("diagram %s: %w", n.Text, err)
		}
		w.code(text)
	case markup.KindList:
		w.flush()
		for _, item := range n.Children {
			if item.Kind == markup.KindItem {
				w.item(item)
			}
		}
	case markup.KindItem:
		w.flush()
		w.item(n)
	case markup.KindRule:
		w.flush()
		y := w.pdf.GetY() + 2
		w.pdf.Line(10, y, 200, y)
		w.pdf.Ln(5)
	default:
		w.para.WriteString(w.engine.Text([]markup.Node{n}))
	}
	return nil
}

func (w *pdfWriter) item(n markup.Node) {
	w.pdf.SetFont("Helvetica", "", 10)
	text := "• " + strings.TrimSpace(w.engine.Text(n.Children))
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
	w.pdf.Ln(1)
}

func (w *pdfWriter) code(text string) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(text, "\n") {
		w.pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
	}
	w.pdf.Ln(2)
}

// flush writes the pending paragraph text, one cell per blank-line
// separated paragraph.
func (w *pdfWriter) flush() {
	text := w.para.String()
	w.para.Reset()
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		w.pdf.SetFont("Helvetica", "", 10)
		w.pdf.MultiCell(0, 5, w.tr(para), "", "L", false)
		w.pdf.Ln(3)
	}
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, strings.TrimSpace(text), "", "L", false)
	pdf.Ln(2)
}
