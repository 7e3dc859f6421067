// Package documents writes generated content to disk in the format implied
// by the file extension.
package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

type formatWriter func(path string, content string) error

// Writer dispatches to a format writer by extension.
type Writer struct {
	formats map[string]formatWriter
}

// NewWriter returns a writer for txt, py, md, docx, xlsx and pdf files.
func NewWriter() *Writer {
	return &Writer{formats: map[string]formatWriter{
		"txt":  writePlain,
		"md":   writePlain,
		"py":   writePlain,
		"docx": writeDocx,
		"xlsx": writeXlsx,
		"pdf":  writePDF,
	}}
}

// Supports reports whether ext (with or without the dot) has a writer.
func (w *Writer) Supports(ext string) bool {
	_, ok := w.formats[normalizeExt(ext)]
	return ok
}

// Write creates parent directories and writes content to path.
func (w *Writer) Write(path string, content string) error {
	ext := normalizeExt(filepath.Ext(path))
	write, ok := w.formats[ext]
	if !ok {
		return fmt.Errorf("%w: no writer for .%s files", domain.ErrUnknownAction, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := write(path, content); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writePlain(path string, content string) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), domain.DocumentPermissions)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// markdownLine classifies a line of lightly formatted text.
type markdownLine struct {
	text    string
	heading int
	bullet  bool
}

func parseMarkdown(content string) []markdownLine {
	var lines []markdownLine
	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			lines = append(lines, markdownLine{text: strings.TrimSpace(trimmed[level:]), heading: level})
		case strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "- "):
			lines = append(lines, markdownLine{text: stripEmphasis(trimmed[2:]), bullet: true})
		default:
			lines = append(lines, markdownLine{text: stripEmphasis(trimmed)})
		}
	}
	return lines
}

func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

var _ ports.DocumentWriter = (*Writer)(nil)
