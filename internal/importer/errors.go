package importer

// errors.go defines the error taxonomy for the import pipeline and the
// mapping to user-friendly messages with support codes.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Malformed file: the file could not be decoded as CSV text or
//	          as a spreadsheet workbook. Fatal to the session.
//	FILE002 - Empty sheet: a workbook sheet has fewer than two rows. The
//	          sheet is excluded from selection; the session continues.
//	FILE003 - Unsupported file: the extension is not .csv, .xlsx or .xls.
//	FILE004 - File too large.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Session not found (expired or never started).
//	IMP002 - No job mapped: commit attempted with no job selected (single
//	         mode) or zero mapped sheets (multi mode).
//	IMP003 - Unknown sheet: a mapping request named a sheet that is not in
//	         the workbook.
//	IMP004 - Unknown job: a mapping request named a job that is not in the
//	         loaded job list.
//
// # Backend Errors (API001-API099)
//
//	API001 - The bulk-create collaborator rejected the batch or could not
//	         be reached.
//
// Cell-level anomalies (unparsable dates, unknown headers, missing
// name/email) are absorbed by the normalizer's documented fallbacks and
// never surface as errors.

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFile means the whole file could not be read. No partial
	// results are retained.
	ErrMalformedFile = errors.New("malformed file")

	// ErrEmptySheet marks a workbook sheet with fewer than two rows.
	ErrEmptySheet = errors.New("empty sheet")

	// ErrUnsupportedFile means the file is neither CSV nor a workbook.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrFileTooLarge means the upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrSessionNotFound means the import session does not exist or has
	// been replaced by a newer file selection.
	ErrSessionNotFound = errors.New("import session not found")

	// ErrNoJobMapped rejects a commit before any external call is made.
	ErrNoJobMapped = errors.New("no job mapped")

	// ErrUnknownSheet means a mapping named a sheet the workbook lacks.
	ErrUnknownSheet = errors.New("unknown sheet")

	// ErrUnknownJob means a mapping named a job outside the loaded list.
	ErrUnknownJob = errors.New("unknown job")

	// ErrBackend wraps failures of the bulk-create collaborator.
	ErrBackend = errors.New("backend request failed")
)

// UserMessage is a user-friendly error with a support code.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// MapError converts a pipeline error to a user-friendly message. Unmatched
// errors map to a generic processing error so internals never leak to the
// client.
func MapError(err error) UserMessage {
	switch {
	case errors.Is(err, ErrMalformedFile):
		return UserMessage{
			Code:    "FILE001",
			Message: "The file could not be processed",
			Action:  "Ensure the file is a valid CSV or Excel document and try again",
		}
	case errors.Is(err, ErrEmptySheet):
		return UserMessage{
			Code:    "FILE002",
			Message: "The sheet has no data rows",
			Action:  "Add candidate rows below the header row",
		}
	case errors.Is(err, ErrUnsupportedFile):
		return UserMessage{
			Code:    "FILE003",
			Message: "Unsupported file type",
			Action:  "Upload a .csv, .xlsx or .xls file",
		}
	case errors.Is(err, ErrFileTooLarge):
		return UserMessage{
			Code:    "FILE004",
			Message: "The file exceeds the size limit",
			Action:  "Split the file and import it in parts",
		}
	case errors.Is(err, ErrSessionNotFound):
		return UserMessage{
			Code:    "IMP001",
			Message: "Import session not found",
			Action:  "The session may have expired. Select the file again",
		}
	case errors.Is(err, ErrNoJobMapped):
		return UserMessage{
			Code:    "IMP002",
			Message: "No job selected for import",
			Action:  "Map at least one sheet to a job before importing",
		}
	case errors.Is(err, ErrUnknownSheet):
		return UserMessage{
			Code:    "IMP003",
			Message: "Sheet not found in the uploaded workbook",
			Action:  "Refresh the sheet list and try again",
		}
	case errors.Is(err, ErrUnknownJob):
		return UserMessage{
			Code:    "IMP004",
			Message: "The selected job no longer exists",
			Action:  "Refresh the job list and choose another job",
		}
	case errors.Is(err, ErrBackend):
		return UserMessage{
			Code:    "API001",
			Message: "Candidates could not be imported",
			Action:  "Please try again in a few moments",
		}
	default:
		return UserMessage{
			Code:    "IMP000",
			Message: "Something went wrong while processing the import",
			Action:  "Please try again",
		}
	}
}

// Error implements error for UserMessage so handlers can wrap it directly.
func (m UserMessage) Error() string {
	return fmt.Sprintf("%s (%s)", m.Message, m.Code)
}
