package documents

import (
	"github.com/go-pdf/fpdf"
)

// writePDF renders text on A4 pages with the core Helvetica font. Characters
// outside cp1252 are replaced by the translator.
func writePDF(path string, content string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("JARVIS", true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range parseMarkdown(content) {
		switch {
		case line.heading > 0:
			size := 18.0 - 2*float64(line.heading-1)
			if size < 12 {
				size = 12
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.5, tr(line.text), "", "L", false)
			pdf.Ln(2)
		case line.text == "":
			pdf.Ln(4)
		default:
			text := line.text
			if line.bullet {
				text = "- " + text
			}
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(text), "", "L", false)
		}
	}
	return pdf.OutputFileAndClose(path)
}
