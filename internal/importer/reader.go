package importer

// reader.go turns raw CSV text into a header-labeled Table without any
// semantic interpretation. Parsing is a single pass over the text with a
// two-state (unquoted/quoted) machine:
//
//   - a quote while unquoted enters quoted state and emits nothing
//   - a doubled quote while quoted emits one literal quote
//   - a single quote while quoted exits quoted state
//   - a comma while unquoted ends the field; inside quotes it is literal
//   - a newline while unquoted ends the record; inside quotes it is literal
//
// Completed fields are trimmed of surrounding whitespace. Lines that are
// blank after trimming are skipped entirely. An unbalanced quote does not
// abort parsing; the record is kept with whatever the state machine
// produced.

import (
	"fmt"
	"strings"
)

// ParseCSV parses delimited text into a Table. The first non-blank record
// is the header row; header cells are lower-cased and trimmed. Returns
// ErrMalformedFile when the input contains no records at all.
func ParseCSV(text string) (*Table, error) {
	records := scanRecords(text)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows found", ErrMalformedFile)
	}

	headers := records[0]
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return &Table{Headers: headers, Rows: records[1:]}, nil
}

// scanRecords runs the quote state machine over the whole input and
// returns one field slice per non-blank record.
func scanRecords(text string) [][]string {
	var (
		records  [][]string
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)

	endField := func() {
		fields = append(fields, strings.TrimSpace(cur.String()))
		cur.Reset()
	}

	endRecord := func() {
		endField()
		if !isBlankRecord(fields) {
			records = append(records, fields)
		}
		fields = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			endField()
		case c == '\n' && !inQuotes:
			endRecord()
		case c == '\r' && !inQuotes:
			// Swallowed; the following '\n' ends the record.
		default:
			cur.WriteByte(c)
		}
	}

	// Flush a trailing record without a final newline.
	if cur.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	return records
}

// isBlankRecord reports whether a record came from a blank line.
func isBlankRecord(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	// A genuinely blank line yields a single empty field. Records with
	// several empty fields still came from "," separators and are kept.
	return len(fields) <= 1
}
