package documents

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/doeshing/jarvis-go/internal/domain"
)

func TestWriterPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cats.txt")
	require.NoError(t, NewWriter().Write(path, "cats"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cats\n", string(data))
}

func TestWriterDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, NewWriter().Write(path, "# Cats & Dogs\n\n* **bold** point\nplain <text>"))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := map[string]*zip.File{}
	for _, f := range zr.File {
		names[f.Name] = f
	}
	require.Contains(t, names, "[Content_Types].xml")
	require.Contains(t, names, "word/document.xml")

	rc, err := names["word/document.xml"].Open()
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	doc := string(body)
	assert.Contains(t, doc, "Cats &amp; Dogs")
	assert.Contains(t, doc, "• bold point")
	assert.Contains(t, doc, "plain &lt;text&gt;")
	assert.Contains(t, doc, "<w:b/>")
}

func TestWriterXlsxFromTableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	content := `{"headers":["Item","Cost"],"rows":[["Rent", 1200],["Food","300"]]}`
	require.NoError(t, NewWriter().Write(path, content))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Item", "Cost"}, rows[0])
	assert.Equal(t, []string{"Rent", "1200"}, rows[1])
}

func TestWriterXlsxFromPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.xlsx")
	require.NoError(t, NewWriter().Write(path, "first\n\nsecond"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Content"}, {"first"}, {"second"}}, rows)
}

func TestWriterPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, NewWriter().Write(path, "# History of AI\n\nCafé culture and ünïcode.\n* a point"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestWriterSupports(t *testing.T) {
	w := NewWriter()
	for _, ext := range []string{"txt", ".PY", "docx", ".xlsx", "pdf", "md"} {
		assert.True(t, w.Supports(ext), ext)
	}
	assert.False(t, w.Supports(".exe"))

	err := w.Write(filepath.Join(t.TempDir(), "x.exe"), "nope")
	assert.True(t, errors.Is(err, domain.ErrUnknownAction))
}
