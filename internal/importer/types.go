// Package importer provides the business logic for bulk candidate import:
// reading CSV and Excel files into tables, normalizing rows into candidate
// drafts, and driving the per-session mapping and commit flow.
// This package has no HTTP dependencies and can be used by any frontend.
package importer

import (
	"context"
	"time"
)

// DefaultSource is applied when an imported row carries no source column.
const DefaultSource = "Bulk Import"

// DefaultStage is applied when an imported row carries no status column.
const DefaultStage = "Applied"

// Table is a de-quoted rectangular view of one CSV file or one workbook
// sheet. Headers are lower-cased and trimmed; rows carry raw cell text and
// may be shorter than the header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Sheet is one named workbook tab rendered as a Table.
type Sheet struct {
	Name  string
	Table Table
}

// Workbook is the result of reading a multi-sheet Excel file. Sheets with
// fewer than two rows are excluded from Sheets and listed in Skipped.
type Workbook struct {
	Sheets  []Sheet
	Skipped []string
}

// CandidateDraft is the canonical normalized record produced from one
// imported row. String fields hold trimmed cell text; coerced fields follow
// the rules in normalize.go. A draft is kept only if Name or Email is
// non-empty.
type CandidateDraft struct {
	// LocalID correlates the draft with its source row before the backend
	// assigns a real identifier ("import-<row-index>").
	LocalID string `json:"localId"`

	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Location   string `json:"location"`
	Experience string `json:"experience"`
	Expertise  string `json:"expertise"`

	// Skills is split from a semicolon-delimited cell, trimmed, empties
	// dropped, order preserved. Never nil.
	Skills []string `json:"skills"`

	// NoticePeriod holds digits and at most one decimal point; every other
	// character from the source cell is stripped.
	NoticePeriod string `json:"noticePeriod"`

	// WillingAlternateSaturday is tri-state: yes, no, or unknown (nil).
	WillingAlternateSaturday *bool `json:"willingAlternateSaturday"`

	WorkPreference          string `json:"workPreference"`
	CurrentCTC              string `json:"currentCtc"`
	CTCFrequency            string `json:"ctcFrequency"`
	ExpectedSalary          string `json:"expectedSalary"`
	InHouseAssignmentStatus string `json:"inHouseAssignmentStatus"`

	// InterviewDate is an ISO calendar date (YYYY-MM-DD) or "" when the
	// source cell is absent or unparsable.
	InterviewDate string `json:"interviewDate"`

	InterviewerName    string `json:"interviewerName"`
	InOfficeAssignment string `json:"inOfficeAssignment"`
	Notes              string `json:"notes"`
	ResumeLocation     string `json:"resumeLocation"`
	AssignmentLocation string `json:"assignmentLocation"`

	Source string `json:"source"`
	Stage  string `json:"stage"`

	// AppliedDate is an ISO datetime; when the source cell is absent or
	// unparsable it holds the import time, never "".
	AppliedDate string `json:"appliedDate"`

	// Fixed defaults applied to every draft regardless of input.
	Score            int      `json:"score"`
	Communications   []string `json:"communications"`
	SalaryNegotiable bool     `json:"salaryNegotiable"`
	ImmediateJoiner  bool     `json:"immediateJoiner"`
	JoiningTime      string   `json:"joiningTime"`

	// Extra preserves cells whose headers are not in the alias dictionary,
	// keyed by the lower-cased header.
	Extra map[string]string `json:"extra,omitempty"`
}

// Job is one entry of the already-loaded job list a commit resolves against.
type Job struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Assignees []int  `json:"assignees"`
}

// ImportRecord is a CandidateDraft stamped with the job it was committed to.
type ImportRecord struct {
	CandidateDraft
	JobID      int    `json:"jobId"`
	Position   string `json:"position"`
	AssignedTo int    `json:"assignedTo"`
}

// Backend is the external collaborator that owns persistence. The importer
// hands committed batches to it and resolves jobs from the list it serves;
// its internals are out of scope here.
type Backend interface {
	ListJobs(ctx context.Context) ([]Job, error)
	BulkCreateCandidates(ctx context.Context, records []ImportRecord) (int, error)
}

// Phase indicates the current stage of an import session.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseProcessing      Phase = "processing"
	PhaseReadySingle     Phase = "ready"
	PhaseReadyMultiSheet Phase = "ready_multi_sheet"
	PhaseError           Phase = "failed"
	PhaseCommitted       Phase = "committed"
)

// Clock supplies the current time. Threading it explicitly keeps date
// fallbacks deterministic in tests.
type Clock func() time.Time

// CommitResult is the outcome of handing a batch to the backend.
type CommitResult struct {
	SessionID string `json:"sessionId"`
	Imported  int    `json:"imported"`
}
