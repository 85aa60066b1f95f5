package extractor

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor pulls cell text out of .xlsx workbooks. Cells are joined
// with spaces and rows with newlines so identifiers split across a row stay
// on one line for the pattern matcher.
type ExcelExtractor struct{}

func (e *ExcelExtractor) Extract(reader io.Reader) (string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var out strings.Builder

	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			continue
		}

		for rows.Next() {
			row, err := rows.Columns()
			if err != nil {
				break
			}

			wrote := false
			for colIdx, cellValue := range row {
				if cellValue == "" {
					continue
				}
				if wrote {
					out.WriteString(" ")
				}
				out.WriteString(cellValue)
				wrote = true

				// Guard against pathologically wide sheets.
				if colIdx > 1000 {
					break
				}
			}
			if wrote {
				out.WriteString("\n")
			}
		}
		rows.Close()
	}

	return out.String(), nil
}
