package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirestack/ats-import/internal/config"
)

// fakeBackend records committed batches and can be told to fail.
type fakeBackend struct {
	jobs    []Job
	batches [][]ImportRecord

	listErr   error
	createErr error
}

func (f *fakeBackend) ListJobs(ctx context.Context) ([]Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func (f *fakeBackend) BulkCreateCandidates(ctx context.Context, records []ImportRecord) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.batches = append(f.batches, records)
	return len(records), nil
}

func testService(backend *fakeBackend) *Service {
	cfg := &config.Config{
		Import: config.ImportConfig{
			MaxFileSize:       1 << 20,
			DefaultAssigneeID: 99,
			SessionTTL:        time.Minute,
		},
	}
	return NewService(backend, cfg, func() time.Time { return testNow })
}

// ----------------------------------------------------------------------------
// StartSession Tests
// ----------------------------------------------------------------------------

func TestService_StartSessionCSV(t *testing.T) {
	svc := testService(&fakeBackend{jobs: testJobs()})

	id, err := svc.StartSession(context.Background(), "candidates.csv",
		[]byte("name,email\nPriya,p@x.com\n"))
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	view, err := svc.WaitSession(id)
	if err != nil {
		t.Fatalf("WaitSession() error = %v", err)
	}
	if view.Phase != PhaseReadySingle {
		t.Errorf("phase = %q, want %q", view.Phase, PhaseReadySingle)
	}
	if len(view.Candidates) != 1 {
		t.Errorf("candidates = %d, want 1", len(view.Candidates))
	}
}

func TestService_StartSessionRejections(t *testing.T) {
	svc := testService(&fakeBackend{jobs: testJobs()})

	tests := []struct {
		name     string
		fileName string
		data     []byte
		want     error
	}{
		{"unsupported extension", "candidates.pdf", []byte("x"), ErrUnsupportedFile},
		{"no extension", "candidates", []byte("x"), ErrUnsupportedFile},
		{"over size limit", "big.csv", make([]byte, 2<<20), ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.StartSession(context.Background(), tt.fileName, tt.data); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestService_MalformedFileFailsSession(t *testing.T) {
	svc := testService(&fakeBackend{jobs: testJobs()})

	id, err := svc.StartSession(context.Background(), "empty.csv", []byte("\n\n"))
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	view, err := svc.WaitSession(id)
	if err != nil {
		t.Fatalf("WaitSession() error = %v", err)
	}
	if view.Phase != PhaseError {
		t.Errorf("phase = %q, want %q", view.Phase, PhaseError)
	}
}

func TestService_SessionNotFound(t *testing.T) {
	svc := testService(&fakeBackend{})
	if _, err := svc.Session("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

// ----------------------------------------------------------------------------
// MapSheet / Commit Tests
// ----------------------------------------------------------------------------

func startAndWait(t *testing.T, svc *Service, fileName string, data []byte) string {
	t.Helper()
	id, err := svc.StartSession(context.Background(), fileName, data)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := svc.WaitSession(id); err != nil {
		t.Fatalf("WaitSession() error = %v", err)
	}
	return id
}

func TestService_MapAndCommit(t *testing.T) {
	backend := &fakeBackend{jobs: testJobs()}
	svc := testService(backend)
	ctx := context.Background()

	id := startAndWait(t, svc, "candidates.csv",
		[]byte("name,email\nPriya,p@x.com\nArjun,a@x.com\n"))

	if n, err := svc.MapSheet(ctx, id, "", 1); err != nil || n != 2 {
		t.Fatalf("MapSheet() = %d, %v", n, err)
	}

	result, err := svc.Commit(ctx, id)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}

	if len(backend.batches) != 1 || len(backend.batches[0]) != 2 {
		t.Fatalf("backend batches = %v", backend.batches)
	}
	if backend.batches[0][0].JobID != 1 {
		t.Errorf("JobID = %d, want 1", backend.batches[0][0].JobID)
	}

	view, _ := svc.Session(id)
	if view.Phase != PhaseCommitted {
		t.Errorf("phase = %q, want %q", view.Phase, PhaseCommitted)
	}
}

func TestService_MapUnknownJob(t *testing.T) {
	svc := testService(&fakeBackend{jobs: testJobs()})
	ctx := context.Background()

	id := startAndWait(t, svc, "candidates.csv", []byte("name\nPriya\n"))

	if _, err := svc.MapSheet(ctx, id, "", 404); !errors.Is(err, ErrUnknownJob) {
		t.Errorf("error = %v, want ErrUnknownJob", err)
	}
}

func TestService_CommitWithoutMapping(t *testing.T) {
	svc := testService(&fakeBackend{jobs: testJobs()})
	ctx := context.Background()

	id := startAndWait(t, svc, "candidates.csv", []byte("name\nPriya\n"))

	if _, err := svc.Commit(ctx, id); !errors.Is(err, ErrNoJobMapped) {
		t.Errorf("error = %v, want ErrNoJobMapped", err)
	}
}

// A backend failure must not consume the session: the phase stays ready and
// the commit can be retried.
func TestService_CommitRetriesAfterBackendFailure(t *testing.T) {
	backend := &fakeBackend{jobs: testJobs()}
	svc := testService(backend)
	ctx := context.Background()

	id := startAndWait(t, svc, "candidates.csv", []byte("name\nPriya\n"))
	if _, err := svc.MapSheet(ctx, id, "", 1); err != nil {
		t.Fatalf("MapSheet() error = %v", err)
	}

	backend.createErr = errors.New("backend down")
	if _, err := svc.Commit(ctx, id); !errors.Is(err, ErrBackend) {
		t.Fatalf("error = %v, want ErrBackend", err)
	}

	view, _ := svc.Session(id)
	if view.Phase != PhaseReadySingle {
		t.Errorf("phase after failed commit = %q, want %q", view.Phase, PhaseReadySingle)
	}

	backend.createErr = nil
	result, err := svc.Commit(ctx, id)
	if err != nil {
		t.Fatalf("retry Commit() error = %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
}

func TestService_JobsCachedAfterFirstFetch(t *testing.T) {
	backend := &fakeBackend{jobs: testJobs()}
	svc := testService(backend)
	ctx := context.Background()

	if _, err := svc.Jobs(ctx); err != nil {
		t.Fatalf("Jobs() error = %v", err)
	}

	// Subsequent calls serve the cached list even when the backend fails.
	backend.listErr = errors.New("backend down")
	jobs, err := svc.Jobs(ctx)
	if err != nil {
		t.Fatalf("cached Jobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Errorf("jobs = %d, want 2", len(jobs))
	}

	if _, err := svc.RefreshJobs(ctx); !errors.Is(err, ErrBackend) {
		t.Errorf("RefreshJobs() error = %v, want ErrBackend", err)
	}
}
