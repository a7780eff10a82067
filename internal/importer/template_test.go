package importer

import (
	"strings"
	"testing"
	"time"
)

func TestTemplate_Shape(t *testing.T) {
	data, err := Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	table, err := ParseCSV(string(data))
	if err != nil {
		t.Fatalf("ParseCSV(template) error = %v", err)
	}

	if len(table.Headers) != 23 {
		t.Errorf("columns = %d, want 23", len(table.Headers))
	}
	for i, col := range TemplateColumns {
		want := strings.ToLower(col)
		if table.Headers[i] != want {
			t.Errorf("header %d = %q, want %q", i, table.Headers[i], want)
		}
	}
	if len(table.Rows) != 2 {
		t.Errorf("example rows = %d, want 2", len(table.Rows))
	}
}

// Every template header must be recognized by the normalizer; a template
// column that lands in Extra means the dictionary and the template drifted
// apart.
func TestTemplate_HeadersAllRecognized(t *testing.T) {
	for _, col := range TemplateColumns {
		key := strings.ToLower(col)
		if _, ok := fieldSetters[key]; !ok {
			t.Errorf("template column %q not in alias dictionary", col)
		}
	}
}

// Importing the template's own example rows should produce fully populated
// drafts with nothing left over in Extra.
func TestTemplate_ImportsCleanly(t *testing.T) {
	data, err := Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	table, err := ParseCSV(string(data))
	if err != nil {
		t.Fatalf("ParseCSV(template) error = %v", err)
	}

	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	drafts := NormalizeTable(table, 0, now)
	if len(drafts) != 2 {
		t.Fatalf("drafts = %d, want 2", len(drafts))
	}

	first := drafts[0]
	if first.Name != "Priya Sharma" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.AppliedDate != "2025-01-15T00:00:00Z" {
		t.Errorf("AppliedDate = %q", first.AppliedDate)
	}
	if first.InterviewDate != "2025-01-22" {
		t.Errorf("InterviewDate = %q", first.InterviewDate)
	}
	if first.WillingAlternateSaturday == nil || !*first.WillingAlternateSaturday {
		t.Error("WillingAlternateSaturday should be true")
	}
	if len(first.Skills) != 3 {
		t.Errorf("Skills = %v", first.Skills)
	}
	if first.Notes != "Strong in system design, quick turnaround" {
		t.Errorf("Notes = %q", first.Notes)
	}
	for _, d := range drafts {
		if len(d.Extra) != 0 {
			t.Errorf("draft %s has unrecognized columns: %v", d.LocalID, d.Extra)
		}
	}
}
