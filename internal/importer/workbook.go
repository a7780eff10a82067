package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook parses Excel workbook bytes into named sheets. Each sheet is
// rendered as a Table with the first row as headers (lower-cased, trimmed,
// blank cells become ""). Sheets with fewer than two rows are excluded from
// the result and reported by name in Skipped; they fail only that sheet,
// never the session. A workbook that cannot be opened at all is
// ErrMalformedFile.
func ParseWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			wb.Skipped = append(wb.Skipped, name)
			continue
		}

		headers := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			headers[i] = strings.ToLower(strings.TrimSpace(h))
		}

		wb.Sheets = append(wb.Sheets, Sheet{
			Name:  name,
			Table: Table{Headers: headers, Rows: rows[1:]},
		})
	}

	return wb, nil
}
