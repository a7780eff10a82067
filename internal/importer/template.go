package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// TemplateFileName is the suggested download name for the import template.
const TemplateFileName = "candidate-import-template.csv"

// TemplateColumns is the fixed header row of the downloadable import
// template. Order is significant.
var TemplateColumns = []string{
	"Date",
	"Name",
	"Email",
	"Phone No",
	"Location",
	"Experience",
	"Expertise",
	"Notice Period",
	"Willing to work on Alternate Saturday",
	"Work Preference",
	"Current CTC",
	"CTC Frequency",
	"Expected CTC",
	"In House Assignment",
	"Interview Date",
	"Interviewer Name",
	"In Office Assignment",
	"HR Remarks",
	"Skills",
	"Source",
	"Status",
	"Resume Location/Link",
	"Assignment Location/Link",
}

// templateRows are the literal example rows shipped with the template.
var templateRows = [][]string{
	{
		"15/01/2025",
		"Priya Sharma",
		"priya.sharma@example.com",
		"9876543210",
		"Bengaluru",
		"5 years",
		"Backend Development",
		"30",
		"Yes",
		"Hybrid",
		"12 LPA",
		"Yearly",
		"16 LPA",
		"Completed",
		"22/01/2025",
		"Rahul Verma",
		"Assigned",
		"Strong in system design, quick turnaround",
		"Go; PostgreSQL; Docker",
		"LinkedIn",
		"Interviewing",
		"https://example.com/resumes/priya-sharma.pdf",
		"https://example.com/assignments/priya-sharma",
	},
	{
		"18/01/2025",
		"Arjun Mehta",
		"arjun.mehta@example.com",
		"9123456780",
		"Pune",
		"2 years",
		"Frontend Development",
		"15",
		"No",
		"Remote",
		"6 LPA",
		"Yearly",
		"9 LPA",
		"Pending",
		"",
		"",
		"",
		"Available immediately",
		"React; TypeScript",
		"Referral",
		"Applied",
		"https://example.com/resumes/arjun-mehta.pdf",
		"",
	},
}

// Template renders the downloadable CSV template. Values containing a
// comma, quote, or newline are quoted with internal quotes doubled.
func Template() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(TemplateColumns); err != nil {
		return nil, fmt.Errorf("write template header: %w", err)
	}
	for _, row := range templateRows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write template row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush template: %w", err)
	}
	return buf.Bytes(), nil
}
