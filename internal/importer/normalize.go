package importer

// normalize.go maps a header-labeled row into a CandidateDraft. Dispatch is
// a static alias-to-setter table built once, so the CSV and workbook paths
// share one normalizer implementation. Cell-level anomalies never fail a
// row; each field degrades to its documented fallback.

import (
	"fmt"
	"strings"
	"time"
)

type fieldSetter func(d *CandidateDraft, value string, now time.Time)

// fieldSetters maps lower-cased header aliases to draft setters. Multiple
// spellings of the same column all land on the same field. Headers missing
// from this table are preserved verbatim in Extra.
var fieldSetters = map[string]fieldSetter{
	"date": func(d *CandidateDraft, v string, now time.Time) {
		d.AppliedDate = parseAppliedDate(v, now)
	},
	"applied date": func(d *CandidateDraft, v string, now time.Time) {
		d.AppliedDate = parseAppliedDate(v, now)
	},

	"name":           func(d *CandidateDraft, v string, _ time.Time) { d.Name = v },
	"candidate name": func(d *CandidateDraft, v string, _ time.Time) { d.Name = v },
	"full name":      func(d *CandidateDraft, v string, _ time.Time) { d.Name = v },

	"email":         func(d *CandidateDraft, v string, _ time.Time) { d.Email = v },
	"email address": func(d *CandidateDraft, v string, _ time.Time) { d.Email = v },
	"email id":      func(d *CandidateDraft, v string, _ time.Time) { d.Email = v },

	"phone":        func(d *CandidateDraft, v string, _ time.Time) { d.Phone = v },
	"phone number": func(d *CandidateDraft, v string, _ time.Time) { d.Phone = v },
	"phone no":     func(d *CandidateDraft, v string, _ time.Time) { d.Phone = v },

	"location":         func(d *CandidateDraft, v string, _ time.Time) { d.Location = v },
	"current location": func(d *CandidateDraft, v string, _ time.Time) { d.Location = v },

	"experience":       func(d *CandidateDraft, v string, _ time.Time) { d.Experience = v },
	"total experience": func(d *CandidateDraft, v string, _ time.Time) { d.Experience = v },

	"expertise": func(d *CandidateDraft, v string, _ time.Time) { d.Expertise = v },

	"notice period": func(d *CandidateDraft, v string, _ time.Time) {
		d.NoticePeriod = CleanNumeric(v, true)
	},

	"willing to work on alternate saturday": func(d *CandidateDraft, v string, _ time.Time) {
		d.WillingAlternateSaturday = parseTriState(v)
	},
	"alternate saturday": func(d *CandidateDraft, v string, _ time.Time) {
		d.WillingAlternateSaturday = parseTriState(v)
	},

	"work preference": func(d *CandidateDraft, v string, _ time.Time) { d.WorkPreference = v },
	"work mode":       func(d *CandidateDraft, v string, _ time.Time) { d.WorkPreference = v },

	"current ctc":   func(d *CandidateDraft, v string, _ time.Time) { d.CurrentCTC = v },
	"ctc frequency": func(d *CandidateDraft, v string, _ time.Time) { d.CTCFrequency = v },

	"expected ctc":    func(d *CandidateDraft, v string, _ time.Time) { d.ExpectedSalary = v },
	"expected salary": func(d *CandidateDraft, v string, _ time.Time) { d.ExpectedSalary = v },

	"in house assignment": func(d *CandidateDraft, v string, _ time.Time) {
		d.InHouseAssignmentStatus = v
	},
	"in-house assignment": func(d *CandidateDraft, v string, _ time.Time) {
		d.InHouseAssignmentStatus = v
	},

	"interview date": func(d *CandidateDraft, v string, _ time.Time) {
		d.InterviewDate = parseInterviewDate(v)
	},

	"interviewer name": func(d *CandidateDraft, v string, _ time.Time) { d.InterviewerName = v },
	"interviewer":      func(d *CandidateDraft, v string, _ time.Time) { d.InterviewerName = v },

	"in office assignment": func(d *CandidateDraft, v string, _ time.Time) { d.InOfficeAssignment = v },

	"hr remarks": func(d *CandidateDraft, v string, _ time.Time) { d.Notes = v },
	"remarks":    func(d *CandidateDraft, v string, _ time.Time) { d.Notes = v },
	"notes":      func(d *CandidateDraft, v string, _ time.Time) { d.Notes = v },

	"skills":     func(d *CandidateDraft, v string, _ time.Time) { d.Skills = splitList(v) },
	"key skills": func(d *CandidateDraft, v string, _ time.Time) { d.Skills = splitList(v) },
	"skill set":  func(d *CandidateDraft, v string, _ time.Time) { d.Skills = splitList(v) },

	"source": func(d *CandidateDraft, v string, _ time.Time) { d.Source = v },

	"status": func(d *CandidateDraft, v string, _ time.Time) { d.Stage = v },
	"stage":  func(d *CandidateDraft, v string, _ time.Time) { d.Stage = v },

	"resume location/link": func(d *CandidateDraft, v string, _ time.Time) { d.ResumeLocation = v },
	"resume location":      func(d *CandidateDraft, v string, _ time.Time) { d.ResumeLocation = v },
	"resume link":          func(d *CandidateDraft, v string, _ time.Time) { d.ResumeLocation = v },

	"assignment location/link": func(d *CandidateDraft, v string, _ time.Time) { d.AssignmentLocation = v },
	"assignment location":      func(d *CandidateDraft, v string, _ time.Time) { d.AssignmentLocation = v },
	"assignment link":          func(d *CandidateDraft, v string, _ time.Time) { d.AssignmentLocation = v },
}

// NormalizeRow maps one row into a CandidateDraft. rowIndex feeds the
// synthetic LocalID; now feeds the applied-date fallback. Returns nil when
// the row has neither a name nor an email.
func NormalizeRow(headers []string, row []string, rowIndex int, now time.Time) *CandidateDraft {
	d := &CandidateDraft{
		LocalID:        fmt.Sprintf("import-%d", rowIndex),
		Skills:         []string{},
		Communications: []string{},
	}

	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}

		var value string
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}

		if set, ok := fieldSetters[key]; ok {
			set(d, value, now)
		} else {
			if d.Extra == nil {
				d.Extra = make(map[string]string)
			}
			d.Extra[key] = value
		}
	}

	if d.Source == "" {
		d.Source = DefaultSource
	}
	if d.Stage == "" {
		d.Stage = DefaultStage
	}
	if d.AppliedDate == "" {
		d.AppliedDate = now.Format(time.RFC3339)
	}

	if d.Name == "" && d.Email == "" {
		return nil
	}
	return d
}

// NormalizeTable normalizes every row of a table, dropping rows without an
// identity. base offsets the LocalID row index so drafts stay unique when
// several sheets feed one batch.
func NormalizeTable(t *Table, base int, now time.Time) []CandidateDraft {
	drafts := make([]CandidateDraft, 0, len(t.Rows))
	for i, row := range t.Rows {
		if d := NormalizeRow(t.Headers, row, base+i, now); d != nil {
			drafts = append(drafts, *d)
		}
	}
	return drafts
}

// dayFirstLayouts parse DD/MM/YYYY and DD-MM-YYYY with or without leading
// zeros. Year-first or two-digit-year strings fail on purpose; ambiguous
// input degrades to the field's fallback rather than guessing MM/DD.
var dayFirstLayouts = []string{"2/1/2006", "2-1-2006"}

func parseDayFirst(s string) (time.Time, bool) {
	for _, layout := range dayFirstLayouts {
		// time.Parse happily reads "25" as the year 25 AD, so two-digit
		// years must be rejected explicitly.
		if t, err := time.Parse(layout, s); err == nil && t.Year() >= 1000 {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAppliedDate returns an ISO datetime; unparsable or empty input falls
// back to the import time, never "".
func parseAppliedDate(s string, now time.Time) string {
	if t, ok := parseDayFirst(s); ok {
		return t.Format(time.RFC3339)
	}
	return now.Format(time.RFC3339)
}

// parseInterviewDate returns an ISO calendar date; unparsable or empty
// input yields "", not the current date.
func parseInterviewDate(s string) string {
	if t, ok := parseDayFirst(s); ok {
		return t.Format("2006-01-02")
	}
	return ""
}

// parseTriState maps case-insensitive yes/no to a bool; anything else,
// including empty, stays unknown.
func parseTriState(s string) *bool {
	switch {
	case strings.EqualFold(s, "yes"):
		v := true
		return &v
	case strings.EqualFold(s, "no"):
		v := false
		return &v
	default:
		return nil
	}
}

// splitList splits a semicolon-delimited cell into trimmed, non-empty
// parts, preserving order.
func splitList(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
