package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jmartel/cv-anonymizer/internal/pipeline"
	"github.com/jmartel/cv-anonymizer/internal/render"
)

// maxUploadBytes bounds the multipart form held in memory
const maxUploadBytes = 32 << 20

// ConvertRequest holds the validated form fields of a conversion request
type ConvertRequest struct {
	Style  string `validate:"omitempty,oneof=advanced fastorgie"`
	Format string `validate:"omitempty,oneof=pdf word docx"`
}

// ConvertResponse represents the response for /convert
type ConvertResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// StatusResponse represents the response for /status/{id}
type StatusResponse struct {
	JobID     string `json:"job_id"`
	InputName string `json:"input_name"`
	Style     string `json:"style"`
	Format    string `json:"format"`
	Status    string `json:"status"`
	Percent   int    `json:"percent"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Hint      string `json:"hint,omitempty"`
	CreatedAt string `json:"created_at"`
}

// parseUpload extracts the uploaded document and form fields from a
// multipart conversion request and stores the file in the upload dir.
func (s *Server) parseUpload(r *http.Request) (inputName, inputPath string, req ConvertRequest, err error) {
	if err = r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", req, &ErrValidation{Field: "body", Message: "expected multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", req, &ErrValidation{Field: "file", Message: "file field is required"}
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".pdf", ".docx", ".doc":
	default:
		return "", "", req, &ErrValidation{Field: "file", Message: fmt.Sprintf("unsupported file type %q, expected .pdf, .docx or .doc", ext)}
	}

	req.Style = r.FormValue("style")
	req.Format = r.FormValue("format")
	if err = s.validate.Struct(req); err != nil {
		return "", "", req, &ErrValidation{Field: "form", Message: err.Error()}
	}

	inputPath, err = s.saveUpload(file, ext)
	if err != nil {
		return "", "", req, fmt.Errorf("failed to store upload: %w", err)
	}

	return header.Filename, inputPath, req, nil
}

// saveUpload copies the uploaded file into the upload directory under a
// fresh name
func (s *Server) saveUpload(file multipart.File, ext string) (string, error) {
	path := filepath.Join(s.cfg.UploadDir, "upload_"+uuid.New().String()+ext)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// handleConvert accepts an upload and queues it for the background worker
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	inputName, inputPath, req, err := s.parseUpload(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job := s.jobs.Create(inputName, inputPath, req.Style, req.Format)

	select {
	case s.queue <- job.ID:
	default:
		busy := &ErrBusy{}
		s.jobs.SetFailed(job.ID, busy.Error(), "")
		s.errorResponse(w, HTTPStatus(busy), busy.Error())
		return
	}

	log.Printf("Queued conversion %s (%s)", job.ID, inputName)
	s.jsonResponse(w, http.StatusAccepted, ConvertResponse{
		JobID:  job.ID.String(),
		Status: JobQueued,
	})
}

// handleConvertStream converts an upload synchronously, streaming
// pipeline progress as SSE events
func (s *Server) handleConvertStream(w http.ResponseWriter, r *http.Request) {
	inputName, inputPath, req, err := s.parseUpload(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	// One document at a time; a queued job may already hold the slot
	select {
	case s.runSlot <- struct{}{}:
		defer func() { <-s.runSlot }()
	default:
		busy := &ErrBusy{}
		s.errorResponse(w, HTTPStatus(busy), busy.Error())
		return
	}

	job := s.jobs.Create(inputName, inputPath, req.Style, req.Format)
	s.jobs.SetRunning(job.ID)

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Starting streaming conversion %s (%s)", job.ID, inputName)

	written, err := pipeline.Run(r.Context(), pipeline.Options{
		InputPath:   inputPath,
		OutputPath:  s.outputPathFor(job.ID),
		Style:       req.Style,
		Format:      req.Format,
		APIKey:      s.cfg.APIKey,
		DatabaseURL: s.cfg.DatabaseURL,
		AssetsDir:   s.cfg.AssetsDir,
		Verbose:     s.cfg.Verbose,
		OnProgress: func(event pipeline.ProgressEvent) {
			s.jobs.SetProgress(job.ID, event)
			if err := sse.WriteProgress(event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})
	if err != nil {
		log.Printf("Streaming conversion %s failed: %v", job.ID, err)
		s.jobs.SetFailed(job.ID, err.Error(), failureHint(err))
		sse.WriteError(err.Error())
		return
	}

	s.jobs.SetCompleted(job.ID, written)
	sse.WriteComplete(job.ID.String(), JobCompleted, filepath.Base(written))
	log.Printf("Streaming conversion %s completed", job.ID)
}

// handleStatus returns the state of a conversion job
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parseJobID(w, r)
	if !ok {
		return
	}

	job := s.jobs.Get(jobID)
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	resp := StatusResponse{
		JobID:     job.ID.String(),
		InputName: job.InputName,
		Style:     job.Style,
		Format:    job.Format,
		Status:    job.Status,
		Percent:   job.Percent,
		Message:   job.Message,
		Error:     job.Error,
		Hint:      job.Hint,
		CreatedAt: job.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDownload serves the generated document of a completed job
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.parseJobID(w, r)
	if !ok {
		return
	}

	job := s.jobs.Get(jobID)
	if job == nil {
		notFound := &ErrJobNotFound{JobID: jobID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if job.Status != JobCompleted || job.OutputPath == "" {
		notReady := &ErrJobNotReady{JobID: jobID, Status: job.Status}
		s.errorResponse(w, HTTPStatus(notReady), notReady.Error())
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(job.OutputPath)))
	http.ServeFile(w, r, job.OutputPath)
}

// parseJobID extracts and validates the {id} path segment
func (s *Server) parseJobID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return uuid.Nil, false
	}

	jobID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return uuid.Nil, false
	}
	return jobID, true
}

// failureHint maps a pipeline failure to a recovery hint for the
// caller. PDF rendering failures are usually page overflows that the
// word format avoids.
func failureHint(err error) string {
	var renderErr *render.RenderError
	if errors.As(err, &renderErr) && renderErr.Format == "pdf" {
		return "the document may not fit on the page, retry with format=word"
	}
	return ""
}
