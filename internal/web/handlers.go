package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hirestack/ats-import/internal/importer"
)

// handleDownloadTemplate serves the candidate import template as a CSV
// download.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := importer.Template()
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", importer.TemplateFileName))
	w.Write(data)
}

// handleStartImport accepts a multipart upload, starts a session, and waits
// for the read phase so the client gets the parsed shape in one round trip.
func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize+1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: missing file field: %v", importer.ErrMalformedFile, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: reading upload: %v", importer.ErrFileTooLarge, err))
		return
	}

	id, err := s.service.StartSession(r.Context(), header.Filename, data)
	if err != nil {
		respondError(w, r, err)
		return
	}

	view, err := s.service.WaitSession(id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, view)
}

// handleSession returns the current snapshot of an import session.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

type mapSheetRequest struct {
	Sheet string `json:"sheet"`
	JobID int    `json:"jobId"`
}

// handleMapSheet assigns a job to a sheet. For CSV sessions the sheet name
// is omitted.
func (s *Server) handleMapSheet(w http.ResponseWriter, r *http.Request) {
	var req mapSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: decoding request: %v", importer.ErrMalformedFile, err))
		return
	}

	id := chi.URLParam(r, "sessionID")
	count, err := s.service.MapSheet(r.Context(), id, req.Sheet, req.JobID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	view, err := s.service.Session(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, struct {
		importer.SessionView
		Mapped int `json:"mapped"`
	}{view, count})
}

// handleCommit sends the mapped candidates to the backend.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Commit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// handleListJobs returns the open jobs candidates can be imported into.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.Jobs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, struct {
		Jobs []importer.Job `json:"jobs"`
	}{jobs})
}

type normalizeRequest struct {
	Value        string `json:"value"`
	Kind         string `json:"kind"`
	AllowDecimal bool   `json:"allowDecimal"`
}

// handleNormalizeField cleans a single raw field value. Used by the manual
// candidate form to share the import pipeline's numeric and currency rules.
func (s *Server) handleNormalizeField(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, fmt.Errorf("%w: decoding request: %v", importer.ErrMalformedFile, err))
		return
	}

	var cleaned string
	switch req.Kind {
	case "currency":
		cleaned = importer.CleanCurrency(req.Value)
	default:
		cleaned = importer.CleanNumeric(req.Value, req.AllowDecimal)
	}

	writeJSON(w, struct {
		Value string `json:"value"`
	}{cleaned})
}
