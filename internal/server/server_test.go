package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmartel/cv-anonymizer/internal/render"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("JWT_SECRET", "")

	s, err := New(Config{Port: 0, UploadDir: t.TempDir()})
	require.NoError(t, err)
	return s
}

func (s *Server) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

// multipartUpload builds a conversion request body with the given file
// name, file content, and form fields.
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := s.serve(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHandleConvert_QueuesJob(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.4 fake"), map[string]string{
		"style":  "advanced",
		"format": "pdf",
	})
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)

	w := s.serve(req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, JobQueued, resp.Status)

	jobID, err := uuid.Parse(resp.JobID)
	require.NoError(t, err)

	job := s.jobs.Get(jobID)
	require.NotNil(t, job)
	assert.Equal(t, "cv.pdf", job.InputName)
	assert.Equal(t, "advanced", job.Style)
}

func TestHandleConvert_RejectsUnsupportedFile(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "cv.txt", []byte("plain text"), nil)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)

	w := s.serve(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported file type")
}

func TestHandleConvert_RejectsBadStyle(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.4"), map[string]string{
		"style": "neon",
	})
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)

	w := s.serve(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

func TestHandleConvert_RejectsMissingFile(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("style", "advanced"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := s.serve(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file field is required")
}

func TestHandleStatus_UnknownJob(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/status/"+uuid.New().String(), nil)
	w := s.serve(req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "job not found")
}

func TestHandleStatus_BadID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/status/not-a-uuid", nil)
	w := s.serve(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStatus_ReportsJobState(t *testing.T) {
	s := newTestServer(t)

	job := s.jobs.Create("cv.pdf", "/tmp/none.pdf", "advanced", "pdf")
	s.jobs.SetFailed(job.ID, "rendering document failed", "retry with format=word")

	req := httptest.NewRequest(http.MethodGet, "/status/"+job.ID.String(), nil)
	w := s.serve(req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, JobFailed, resp.Status)
	assert.Equal(t, "rendering document failed", resp.Error)
	assert.Contains(t, resp.Hint, "format=word")
}

func TestHandleDownload_NotReady(t *testing.T) {
	s := newTestServer(t)

	job := s.jobs.Create("cv.pdf", "/tmp/none.pdf", "advanced", "pdf")

	req := httptest.NewRequest(http.MethodGet, "/download/"+job.ID.String(), nil)
	w := s.serve(req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "output not available")
}

func TestHandleConvertStream_ReportsPipelineError(t *testing.T) {
	s := newTestServer(t)

	// Garbage PDF content makes extraction fail, which the stream
	// reports as an SSE error event.
	body, contentType := multipartUpload(t, "cv.pdf", []byte("not a real pdf"), nil)
	req := httptest.NewRequest(http.MethodPost, "/convert/stream", body)
	req.Header.Set("Content-Type", contentType)

	w := s.serve(req)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event: error")
}

func TestAuthRequiredWhenSecretSet(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("JWT_SECRET", "test-secret-key")

	s, err := New(Config{Port: 0, UploadDir: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, s.jwtService)

	t.Run("convert without token is rejected", func(t *testing.T) {
		body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.4"), nil)
		req := httptest.NewRequest(http.MethodPost, "/convert", body)
		req.Header.Set("Content-Type", contentType)

		w := s.serve(req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("convert with valid token is accepted", func(t *testing.T) {
		token, err := s.jwtService.GenerateToken(uuid.New())
		require.NoError(t, err)

		body, contentType := multipartUpload(t, "cv.pdf", []byte("%PDF-1.4"), nil)
		req := httptest.NewRequest(http.MethodPost, "/convert", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)

		w := s.serve(req)
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("status stays open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/status/"+uuid.New().String(), nil)
		w := s.serve(req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFailureHint(t *testing.T) {
	assert.Empty(t, failureHint(assert.AnError))

	pdfErr := &render.RenderError{Format: "pdf", Cause: assert.AnError}
	assert.Contains(t, failureHint(fmt.Errorf("pipeline: %w", pdfErr)), "format=word")

	docxErr := &render.RenderError{Format: "docx", Cause: assert.AnError}
	assert.Empty(t, failureHint(docxErr))
}
