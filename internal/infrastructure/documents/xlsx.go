package documents

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table is the JSON shape spreadsheet content is generated in.
type table struct {
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// parseTable decodes content as a table. Plain text becomes one row per line.
func parseTable(content string) table {
	var t table
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &t); err == nil && (len(t.Headers) > 0 || len(t.Rows) > 0) {
		return t
	}
	t = table{Headers: []string{"Content"}}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			t.Rows = append(t.Rows, []interface{}{line})
		}
	}
	return t
}

func writeXlsx(path string, content string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	t := parseTable(content)

	for col, header := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(value)); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}
	return f.SaveAs(path)
}

func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case string, float64, bool, nil:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}
