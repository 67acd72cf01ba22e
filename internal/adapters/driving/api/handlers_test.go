package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

type stubIngestor struct {
	report    *domain.IngestionReport
	err       error
	lastNames []string
}

func (s *stubIngestor) Ingest(_ context.Context, uploads []driving.FileUpload) (*domain.IngestionReport, error) {
	s.lastNames = nil
	for _, u := range uploads {
		s.lastNames = append(s.lastNames, u.Filename)
		_, _ = io.ReadAll(u.Content)
	}
	return s.report, s.err
}

type stubAnswerer struct {
	answer       domain.Answer
	err          error
	lastQuestion string
}

func (s *stubAnswerer) Ask(_ context.Context, question string) (domain.Answer, error) {
	s.lastQuestion = question
	return s.answer, s.err
}

func newTestServer(t *testing.T, ingestor driving.Ingestor, answerer driving.Answerer) http.Handler {
	t.Helper()
	return NewServer(Config{}, ingestor, answerer, logger.NewNop()).Handler()
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	ing := &stubIngestor{report: &domain.IngestionReport{
		Files: []domain.FileResult{
			{Filename: "a.pdf", Chunks: 3},
			{Filename: "b.pdf", Chunks: 2},
		},
	}}
	handler := newTestServer(t, ing, &stubAnswerer{})

	body, contentType := multipartBody(t, "a.pdf", "b.pdf")
	req := httptest.NewRequest(http.MethodPost, "/upload_pdfs/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, ing.lastNames)

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.FileCount)
	assert.Equal(t, "Files uploaded successfully", resp.Message)
}

func TestUpload_AllFailedIsServerError(t *testing.T) {
	ing := &stubIngestor{report: &domain.IngestionReport{
		Files: []domain.FileResult{
			{Filename: "a.pdf", Err: domain.ErrExtraction},
		},
	}}
	handler := newTestServer(t, ing, &stubAnswerer{})

	body, contentType := multipartBody(t, "a.pdf")
	req := httptest.NewRequest(http.MethodPost, "/upload_pdfs/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp.Error)
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	handler := newTestServer(t, &stubIngestor{}, &stubAnswerer{})

	body, contentType := multipartBody(t, "notes.txt")
	req := httptest.NewRequest(http.MethodPost, "/upload_pdfs/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_ExtensionCheckIsCaseInsensitive(t *testing.T) {
	ing := &stubIngestor{report: &domain.IngestionReport{
		Files: []domain.FileResult{{Filename: "REPORT.PDF", Chunks: 1}},
	}}
	handler := newTestServer(t, ing, &stubAnswerer{})

	body, contentType := multipartBody(t, "REPORT.PDF")
	req := httptest.NewRequest(http.MethodPost, "/upload_pdfs/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpload_NoFiles(t *testing.T) {
	handler := newTestServer(t, &stubIngestor{}, &stubAnswerer{})

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/upload_pdfs/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_Success(t *testing.T) {
	ans := &stubAnswerer{answer: domain.Answer{
		Response: "The diagnosis is mild hypertension.",
		Sources:  []string{"report.pdf"},
	}}
	handler := newTestServer(t, &stubIngestor{}, ans)

	req := httptest.NewRequest(http.MethodPost, "/ask/",
		bytes.NewBufferString("question=What+is+the+diagnosis%3F"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "What is the diagnosis?", ans.lastQuestion)

	var resp askResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "hypertension")
	assert.Equal(t, []string{"report.pdf"}, resp.Sources)
}

func TestAsk_EmptySourcesStaysArray(t *testing.T) {
	ans := &stubAnswerer{answer: domain.Answer{Response: "no idea"}}
	handler := newTestServer(t, &stubIngestor{}, ans)

	req := httptest.NewRequest(http.MethodPost, "/ask/",
		bytes.NewBufferString("question=anything"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sources":[]`)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	handler := newTestServer(t, &stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodPost, "/ask/",
		bytes.NewBufferString("question=++"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAsk_ErrorEnvelope(t *testing.T) {
	ans := &stubAnswerer{err: errors.New("store unavailable")}
	handler := newTestServer(t, &stubIngestor{}, ans)

	req := httptest.NewRequest(http.MethodPost, "/ask/",
		bytes.NewBufferString("question=anything"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp.Error)
	assert.Contains(t, resp.Message, "store unavailable")
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, &stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID_Assigned(t *testing.T) {
	handler := newTestServer(t, &stubIngestor{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}
