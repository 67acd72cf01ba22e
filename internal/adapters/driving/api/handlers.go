package api

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// uploadResponse is returned after a successful (or partially
// successful) ingestion batch.
type uploadResponse struct {
	Message   string `json:"message"`
	FileCount int    `json:"file_count"`
}

// askResponse carries the synthesized answer and its source filenames.
type askResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// errorResponse is the envelope for all error statuses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, errorResponse{
		Error:   "Internal Server Error",
		Message: msg,
	})
}

// UploadHandler accepts multipart PDF uploads and runs them through the
// ingestion pipeline.
type UploadHandler struct {
	ingestor driving.Ingestor
	log      *logger.Logger
}

// NewUploadHandler creates the upload handler.
func NewUploadHandler(ingestor driving.Ingestor, log *logger.Logger) *UploadHandler {
	return &UploadHandler{ingestor: ingestor, log: log}
}

// Upload handles POST /upload_pdfs/. Files that fail individually do
// not fail the request; only a batch where every file failed produces
// a 500.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Bad Request",
			Message: "expected multipart form upload",
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Bad Request",
			Message: "no files provided",
		})
		return
	}

	uploads := make([]driving.FileUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range files {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "Bad Request",
				Message: "only PDF files are supported: " + fh.Filename,
			})
			return
		}
		f, err := fh.Open()
		if err != nil {
			internalError(c, "reading upload "+fh.Filename)
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, driving.FileUpload{Filename: fh.Filename, Content: f})
	}

	report, err := h.ingestor.Ingest(c.Request.Context(), uploads)
	if err != nil {
		h.log.Error("ingestion failed", "error", err)
		internalError(c, err.Error())
		return
	}
	if report.AllFailed() {
		internalError(c, report.Summary())
		return
	}

	c.JSON(http.StatusOK, uploadResponse{
		Message:   report.Summary(),
		FileCount: report.SucceededCount(),
	})
}

// AskHandler answers questions grounded in the indexed documents.
type AskHandler struct {
	answerer driving.Answerer
	log      *logger.Logger
}

// NewAskHandler creates the ask handler.
func NewAskHandler(answerer driving.Answerer, log *logger.Logger) *AskHandler {
	return &AskHandler{answerer: answerer, log: log}
}

// Ask handles POST /ask/. The question arrives as a form field to stay
// wire compatible with the original frontend.
func (h *AskHandler) Ask(c *gin.Context) {
	question := c.PostForm("question")
	if strings.TrimSpace(question) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "Bad Request",
			Message: "question must not be empty",
		})
		return
	}

	answer, err := h.answerer.Ask(c.Request.Context(), question)
	if err != nil {
		h.log.Error("answering failed", "error", err)
		internalError(c, err.Error())
		return
	}

	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	c.JSON(http.StatusOK, askResponse{Response: answer.Response, Sources: sources})
}

// HealthHandler reports liveness.
type HealthHandler struct{}

// NewHealthHandler creates the health handler.
func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
