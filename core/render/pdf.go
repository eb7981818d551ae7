// Package render — PDF renderer.
// Lays the rendered gallery out with gofpdf. Gallery entries (a heading
// carrying links, usually followed by the figure image) become a bold label
// with clickable links and an image caption. Other Markdown falls back to
// headings, paragraphs, lists and code blocks. Inline HTML has no PDF form
// and is dropped.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/gallerygen/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders the gallery Markdown as a PDF document.
type PDFRenderer struct {
	compress bool
}

// NewPDFRenderer creates a PDFRenderer with compressed page streams.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

var (
	listItemRegex  = regexp.MustCompile(`^([-*]|\d+\.)\s+(.*)$`)
	soloImageRegex = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	boldRegex      = regexp.MustCompile(`\*\*|__`)
	italicRegex    = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	codeSpanRegex  = regexp.MustCompile("`([^`]+)`")
)

var headingSizes = [...]float64{18, 15, 13, 12, 11, 10}

// galleryEntry is one figure: its label, the links of its heading and the
// image that follows it.
type galleryEntry struct {
	label string
	links []Link
	image *Image
}

// pdfPage wraps the document together with its cp1252 translator, so every
// string reaching gofpdf's core fonts goes through tr.
type pdfPage struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// Render converts the gallery Markdown into PDF bytes.
func (r *PDFRenderer) Render(doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreator("gallerygen", false)
	pdf.AddPage()

	page := &pdfPage{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	page.header(doc)

	lines := strings.Split(doc.Markdown, "\n")
	inCode := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode {
			page.code(line)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "<"):
			// anchors and inlined figure HTML
		case strings.HasPrefix(trimmed, "#"):
			level, text := splitHeading(trimmed)
			entry, ok := parseEntry(text)
			if !ok {
				page.heading(text, level)
				continue
			}
			if j := nextContentLine(lines, i+1); j >= 0 {
				if m := soloImageRegex.FindStringSubmatch(strings.TrimSpace(lines[j])); m != nil {
					entry.image = &Image{Alt: m[1], Src: m[2]}
					i = j
				}
			}
			page.entry(entry)
		case soloImageRegex.MatchString(trimmed):
			m := soloImageRegex.FindStringSubmatch(trimmed)
			page.caption(Image{Alt: m[1], Src: m[2]})
		case listItemRegex.MatchString(trimmed):
			m := listItemRegex.FindStringSubmatch(trimmed)
			page.listItem(m[1], m[2])
		default:
			page.paragraph(line)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (p *pdfPage) header(doc core.Document) {
	if doc.Title != "" {
		p.pdf.SetTitle(doc.Title, true)
		p.pdf.SetFont("Helvetica", "B", 18)
		p.pdf.MultiCell(0, 8, p.tr(doc.Title), "", "L", false)
		p.pdf.Ln(4)
	}
	if doc.Template != "" {
		p.pdf.SetFont("Helvetica", "I", 9)
		p.pdf.SetTextColor(100, 100, 100)
		p.pdf.MultiCell(0, 5, p.tr("Template: "+doc.Template), "", "L", false)
		p.pdf.SetTextColor(0, 0, 0)
		p.pdf.Ln(6)
	}
}

func (p *pdfPage) heading(text string, level int) {
	size := headingSizes[len(headingSizes)-1]
	if level >= 1 && level <= len(headingSizes) {
		size = headingSizes[level-1]
	}
	p.pdf.Ln(4)
	p.pdf.SetFont("Helvetica", "B", size)
	p.pdf.MultiCell(0, size*0.6, p.tr(cleanInlineMarkdown(text)), "", "L", false)
	p.pdf.Ln(2)
}

// entry writes the label in bold, then each heading link as a clickable
// annotation on the same line.
func (p *pdfPage) entry(e galleryEntry) {
	p.pdf.Ln(3)
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.Write(6, p.tr(e.label))

	p.pdf.SetFont("Helvetica", "U", 10)
	p.pdf.SetTextColor(30, 90, 200)
	for _, l := range e.links {
		p.pdf.Write(6, "   ")
		p.pdf.WriteLinkString(6, p.tr(l.Text), l.Href)
	}
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.Ln(7)

	if e.image != nil {
		p.caption(*e.image)
	}
}

func (p *pdfPage) caption(img Image) {
	text := img.Alt
	if text == "" {
		text = "Figure"
	}
	p.pdf.SetFont("Helvetica", "I", 9)
	p.pdf.SetTextColor(100, 100, 100)
	p.pdf.MultiCell(0, 4.5, p.tr(text+" ("+img.Src+")"), "", "L", false)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.Ln(2)
}

func (p *pdfPage) listItem(marker, text string) {
	if marker == "-" || marker == "*" {
		marker = "•"
	}
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.MultiCell(0, 5, p.tr(marker+" "+cleanInlineMarkdown(text)), "", "L", false)
}

func (p *pdfPage) paragraph(text string) {
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.MultiCell(0, 5, p.tr(cleanInlineMarkdown(text)), "", "L", false)
}

func (p *pdfPage) code(line string) {
	p.pdf.SetFont("Courier", "", 9)
	p.pdf.SetFillColor(245, 245, 245)
	p.pdf.MultiCell(0, 4.5, p.tr(line), "", "L", true)
}

func splitHeading(line string) (int, string) {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	return level, strings.TrimSpace(line[level:])
}

// parseEntry reads "Arc ([Interactive](url)) [(code)](url)" as the label
// "Arc" with the links "Interactive" and "code". Headings without a link
// before any plain text are not entries.
func parseEntry(heading string) (galleryEntry, bool) {
	locs := linkRegex.FindAllStringSubmatchIndex(heading, -1)
	if len(locs) == 0 {
		return galleryEntry{}, false
	}
	label := strings.TrimRight(heading[:locs[0][0]], " (")
	if label == "" {
		return galleryEntry{}, false
	}

	e := galleryEntry{label: cleanInlineMarkdown(label)}
	for _, loc := range locs {
		if loc[3] > loc[2] { // image syntax
			continue
		}
		e.links = append(e.links, Link{
			Text: strings.Trim(heading[loc[4]:loc[5]], "() "),
			Href: heading[loc[6]:loc[7]],
		})
	}
	return e, len(e.links) > 0
}

func nextContentLine(lines []string, from int) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) != "" {
			return j
		}
	}
	return -1
}

// cleanInlineMarkdown strips inline Markdown formatting, keeping link and
// image text.
func cleanInlineMarkdown(text string) string {
	text = boldRegex.ReplaceAllString(text, "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = codeSpanRegex.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$2")
	return strings.TrimSpace(text)
}
