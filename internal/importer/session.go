package importer

// session.go holds the per-import session state machine:
//
//	Processing -> ReadySingle (one table, one job selector)
//	           -> ReadyMultiSheet (per-sheet job selectors)
//	           -> Error (file-level failure, no partial data)
//	Ready*     -> Committed
//
// In multi-sheet mode each sheet moves Unmapped -> Mapped independently.
// A sheet's rows are normalized once, on its first mapping; re-mapping to a
// different job never re-parses.

import (
	"fmt"
	"sync"
	"time"
)

// SheetState tracks one workbook sheet (or the single CSV table) within a
// session.
type SheetState struct {
	Name   string
	JobID  *int
	Parsed bool
	Drafts []CandidateDraft

	table Table
}

// ImportSession is the explicit state object for one selected file. All
// mutation goes through its methods under the internal lock; handlers only
// ever see View snapshots.
type ImportSession struct {
	ID       string
	FileName string

	mu      sync.Mutex
	phase   Phase
	err     error
	single  *SheetState
	sheets  map[string]*SheetState
	order   []string
	skipped []string
	nextRow int
	done    chan struct{}
}

func newSession(id, fileName string) *ImportSession {
	return &ImportSession{
		ID:       id,
		FileName: fileName,
		phase:    PhaseProcessing,
		done:     make(chan struct{}),
	}
}

// setTable installs a parsed CSV table, normalizes it eagerly, and moves
// the session to ReadySingle. Returns the number of retained drafts.
func (s *ImportSession) setTable(t *Table, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := NormalizeTable(t, s.nextRow, now)
	s.nextRow += len(t.Rows)
	s.single = &SheetState{table: *t, Drafts: drafts, Parsed: true}
	s.phase = PhaseReadySingle
	return len(drafts)
}

// setWorkbook installs workbook sheets unparsed and moves the session to
// ReadyMultiSheet. Normalization is deferred until a sheet is mapped.
func (s *ImportSession) setWorkbook(wb *Workbook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sheets = make(map[string]*SheetState, len(wb.Sheets))
	for _, sh := range wb.Sheets {
		s.sheets[sh.Name] = &SheetState{Name: sh.Name, table: sh.Table}
		s.order = append(s.order, sh.Name)
	}
	s.skipped = wb.Skipped
	s.phase = PhaseReadyMultiSheet
}

// fail records a file-level failure. The session keeps no partial data and
// must be restarted with a new file.
func (s *ImportSession) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseError
	s.err = err
}

// mapSheet assigns a job to a sheet, normalizing its rows on first mapping.
// An empty sheet name addresses the single CSV table. Returns the number of
// normalized candidates for the mapped sheet.
func (s *ImportSession) mapSheet(name string, jobID int, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		if s.single == nil {
			return 0, ErrUnknownSheet
		}
		id := jobID
		s.single.JobID = &id
		return len(s.single.Drafts), nil
	}

	sheet, ok := s.sheets[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSheet, name)
	}

	id := jobID
	sheet.JobID = &id
	if !sheet.Parsed {
		sheet.Drafts = NormalizeTable(&sheet.table, s.nextRow, now)
		s.nextRow += len(sheet.table.Rows)
		sheet.Parsed = true
	}
	return len(sheet.Drafts), nil
}

// buildBatch assembles the final import records. Single mode requires a
// mapped job; multi-sheet mode is per-sheet best-effort, skipping sheets
// with no mapping or zero normalized rows and tagging each record's source
// with its sheet name. Returns ErrNoJobMapped when nothing would be
// emitted.
func (s *ImportSession) buildBatch(jobs []Job, fallbackAssignee int) ([]ImportRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.single != nil {
		if s.single.JobID == nil {
			return nil, ErrNoJobMapped
		}
		return stampRecords(s.single.Drafts, *s.single.JobID, "", jobs, fallbackAssignee), nil
	}

	var batch []ImportRecord
	for _, name := range s.order {
		sheet := s.sheets[name]
		if sheet.JobID == nil || len(sheet.Drafts) == 0 {
			continue
		}
		batch = append(batch, stampRecords(sheet.Drafts, *sheet.JobID, name, jobs, fallbackAssignee)...)
	}
	if len(batch) == 0 {
		return nil, ErrNoJobMapped
	}
	return batch, nil
}

// stampRecords merges job assignment into each draft. The job title is ""
// when the id is not in the list; the assignee falls back to the configured
// id when the job has none. Never fails.
func stampRecords(drafts []CandidateDraft, jobID int, sheetName string, jobs []Job, fallbackAssignee int) []ImportRecord {
	title, assignee := resolveJob(jobs, jobID, fallbackAssignee)

	records := make([]ImportRecord, 0, len(drafts))
	for _, d := range drafts {
		if sheetName != "" {
			d.Source = fmt.Sprintf("%s (%s)", d.Source, sheetName)
		}
		records = append(records, ImportRecord{
			CandidateDraft: d,
			JobID:          jobID,
			Position:       title,
			AssignedTo:     assignee,
		})
	}
	return records
}

func resolveJob(jobs []Job, id, fallbackAssignee int) (title string, assignee int) {
	assignee = fallbackAssignee
	for _, j := range jobs {
		if j.ID == id {
			title = j.Title
			if len(j.Assignees) > 0 {
				assignee = j.Assignees[0]
			}
			return title, assignee
		}
	}
	return "", assignee
}

func (s *ImportSession) markCommitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseCommitted
}

// SheetView is a read-only snapshot of one sheet's mapping progress.
type SheetView struct {
	Name       string `json:"name"`
	JobID      *int   `json:"jobId"`
	Parsed     bool   `json:"parsed"`
	Candidates int    `json:"candidates"`
}

// SessionView is a read-only snapshot of the session for rendering.
type SessionView struct {
	ID            string           `json:"id"`
	FileName      string           `json:"fileName"`
	Phase         Phase            `json:"phase"`
	Error         string           `json:"error,omitempty"`
	JobID         *int             `json:"jobId,omitempty"`
	Candidates    []CandidateDraft `json:"candidates,omitempty"`
	Sheets        []SheetView      `json:"sheets,omitempty"`
	SkippedSheets []string         `json:"skippedSheets,omitempty"`
}

// View returns a consistent snapshot of the session.
func (s *ImportSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		ID:            s.ID,
		FileName:      s.FileName,
		Phase:         s.phase,
		SkippedSheets: s.skipped,
	}
	if s.err != nil {
		view.Error = MapError(s.err).Message
	}
	if s.single != nil {
		view.JobID = s.single.JobID
		view.Candidates = s.single.Drafts
	}
	for _, name := range s.order {
		sheet := s.sheets[name]
		view.Sheets = append(view.Sheets, SheetView{
			Name:       name,
			JobID:      sheet.JobID,
			Parsed:     sheet.Parsed,
			Candidates: len(sheet.Drafts),
		})
	}
	return view
}
