package documents

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const docxFooter = `</w:body></w:document>`

// writeDocx writes a minimal WordprocessingML package: one paragraph per
// line, headings as bold runs sized by level.
func writeDocx(path string, content string) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocument(content)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), domain.DocumentPermissions)
}

func docxDocument(content string) string {
	var b strings.Builder
	b.WriteString(docxHeader)
	for _, line := range parseMarkdown(content) {
		b.WriteString("<w:p>")
		if line.text != "" {
			b.WriteString("<w:r>")
			if line.heading > 0 {
				size := 36 - 4*(line.heading-1)
				if size < 24 {
					size = 24
				}
				b.WriteString(`<w:rPr><w:b/><w:sz w:val="`)
				b.WriteString(strconv.Itoa(size))
				b.WriteString(`"/></w:rPr>`)
			}
			text := line.text
			if line.bullet {
				text = "• " + text
			}
			b.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(&b, []byte(text))
			b.WriteString("</w:t></w:r>")
		}
		b.WriteString("</w:p>")
	}
	b.WriteString(docxFooter)
	return b.String()
}
