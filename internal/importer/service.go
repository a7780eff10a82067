package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hirestack/ats-import/internal/config"
)

type fileKind int

const (
	kindCSV fileKind = iota
	kindWorkbook
)

// Service drives import sessions: it reads selected files in the
// background, tracks sessions by id, and owns the commit handoff to the
// backend. One session corresponds to one selected file; selecting a new
// file starts a fresh session and the old one simply expires.
type Service struct {
	backend           Backend
	clock             Clock
	defaultAssigneeID int
	maxFileSize       int64
	sessionTTL        time.Duration

	mu       sync.RWMutex
	sessions map[string]*ImportSession
	jobs     []Job
	jobsSet  bool
}

// NewService creates a Service. A nil clock defaults to time.Now; tests
// pass a fixed clock to pin date fallbacks.
func NewService(backend Backend, cfg *config.Config, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		backend:           backend,
		clock:             clock,
		defaultAssigneeID: cfg.Import.DefaultAssigneeID,
		maxFileSize:       cfg.Import.MaxFileSize,
		sessionTTL:        cfg.Import.SessionTTL,
		sessions:          make(map[string]*ImportSession),
	}
}

// Jobs returns the job list the commit resolves against, fetching it from
// the backend on first use.
func (s *Service) Jobs(ctx context.Context) ([]Job, error) {
	s.mu.RLock()
	if s.jobsSet {
		jobs := s.jobs
		s.mu.RUnlock()
		return jobs, nil
	}
	s.mu.RUnlock()
	return s.RefreshJobs(ctx)
}

// RefreshJobs re-fetches the job list from the backend.
func (s *Service) RefreshJobs(ctx context.Context) ([]Job, error) {
	jobs, err := s.backend.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", ErrBackend, err)
	}

	s.mu.Lock()
	s.jobs = jobs
	s.jobsSet = true
	s.mu.Unlock()
	return jobs, nil
}

// StartSession begins processing a selected file and returns the session id
// immediately. fileName decides the reader: .csv goes through the delimited
// text reader, .xlsx/.xls through the workbook reader.
func (s *Service) StartSession(ctx context.Context, fileName string, data []byte) (string, error) {
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}

	var kind fileKind
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		kind = kindCSV
	case ".xlsx", ".xls":
		kind = kindWorkbook
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFile, fileName)
	}

	sess := newSession(uuid.New().String(), fileName)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	go s.process(sess, kind, data)

	return sess.ID, nil
}

// process runs the read phase in the background and resumes the session
// state machine with the result.
func (s *Service) process(sess *ImportSession, kind fileKind, data []byte) {
	defer close(sess.done)
	defer s.cleanup(sess.ID, s.sessionTTL)

	switch kind {
	case kindCSV:
		table, err := ParseCSV(string(data))
		if err != nil {
			sess.fail(err)
			slog.Warn("import read failed", "session_id", sess.ID, "file", sess.FileName, "error", err)
			return
		}
		kept := sess.setTable(table, s.clock())
		slog.Info("import file ready",
			"session_id", sess.ID,
			"file", sess.FileName,
			"candidates", kept,
		)
	case kindWorkbook:
		wb, err := ParseWorkbook(data)
		if err != nil {
			sess.fail(err)
			slog.Warn("import read failed", "session_id", sess.ID, "file", sess.FileName, "error", err)
			return
		}
		sess.setWorkbook(wb)
		slog.Info("workbook ready",
			"session_id", sess.ID,
			"file", sess.FileName,
			"sheets", len(wb.Sheets),
			"skipped", len(wb.Skipped),
		)
	}
}

// Session returns a snapshot of the session without waiting for the read
// phase to finish.
func (s *Service) Session(id string) (SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.View(), nil
}

// WaitSession blocks until the read phase completes and returns the
// resulting snapshot.
func (s *Service) WaitSession(id string) (SessionView, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}
	<-sess.done
	return sess.View(), nil
}

// MapSheet assigns a job to a sheet (empty name addresses the single CSV
// table). The job must be in the loaded job list. Returns the number of
// normalized candidates for the sheet.
func (s *Service) MapSheet(ctx context.Context, id, sheet string, jobID int) (int, error) {
	sess, err := s.get(id)
	if err != nil {
		return 0, err
	}

	jobs, err := s.Jobs(ctx)
	if err != nil {
		return 0, err
	}
	if !jobExists(jobs, jobID) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownJob, jobID)
	}

	return sess.mapSheet(sheet, jobID, s.clock())
}

// Commit assembles the final batch and hands it to the backend. Nothing is
// sent when no sheet is mapped; a backend failure leaves the session ready
// so the commit can be retried.
func (s *Service) Commit(ctx context.Context, id string) (*CommitResult, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	jobs, err := s.Jobs(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := sess.buildBatch(jobs, s.defaultAssigneeID)
	if err != nil {
		return nil, err
	}

	created, err := s.backend.BulkCreateCandidates(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: bulk create: %v", ErrBackend, err)
	}

	sess.markCommitted()
	slog.Info("import committed", "session_id", sess.ID, "file", sess.FileName, "candidates", created)

	return &CommitResult{SessionID: sess.ID, Imported: created}, nil
}

func (s *Service) get(id string) (*ImportSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// cleanup removes the session from tracking after a delay.
func (s *Service) cleanup(id string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	})
}

func jobExists(jobs []Job, id int) bool {
	for _, j := range jobs {
		if j.ID == id {
			return true
		}
	}
	return false
}
