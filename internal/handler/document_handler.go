package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docanalyzer/internal/export"
	"docanalyzer/internal/service"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// multipart boundaries and headers.
const multipartOverhead = 1 << 20

// DocumentHandler handles upload, listing, analysis and export endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	maxUploadBytes  int64
	logger          *zap.Logger
	now             func() time.Time
}

// NewDocumentHandler creates a new DocumentHandler. maxUploadBytes <= 0
// disables the request body limit.
func NewDocumentHandler(documentService service.DocumentService, maxUploadBytes int64, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
		now:             time.Now,
	}
}

// Upload handles POST /upload
// @Summary Upload and analyze a PDF
// @Description Stores the PDF, extracts its text, classifies it and runs the gap analysis
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 201 {object} domain.AnalysisPayload "Document stored and analyzed"
// @Failure 400 {object} ErrorResponse "Missing file, empty filename or unsupported type"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 500 {object} ErrorResponse "Extraction or storage failure"
// @Router /upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	input := service.UploadInput{}
	file, header, err := c.Request.FormFile("file")
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		input.Filename = header.Filename
		input.Size = header.Size
		input.File = file
	case isBodyTooLarge(err):
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds maximum allowed size")
		return
	case errors.Is(err, http.ErrMissingFile) && hasEmptyFilePart(c):
		// A file input submitted without a selection arrives as a part with
		// an empty filename, which the multipart reader files under Value.
		input.File = strings.NewReader("")
	}

	payload, err := h.documentService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, payload)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func hasEmptyFilePart(c *gin.Context) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value["file"]
	return ok
}

// List handles GET /documents
// @Summary List documents
// @Description All documents, newest first, with their stored classification
// @Tags documents
// @Produce json
// @Success 200 {array} domain.DocumentSummary
// @Failure 500 {object} ErrorResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	summaries, err := h.documentService.List(c.Request.Context())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetAnalysis handles GET /analysis/:id
// @Summary Get document analysis
// @Description Returns the stored classification and gap analysis for a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Param refresh query bool false "Re-run the gap analysis on the stored text"
// @Success 200 {object} domain.AnalysisPayload
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse
// @Router /analysis/{id} [get]
func (h *DocumentHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	refresh, _ := strconv.ParseBool(c.Query("refresh"))

	payload, err := h.documentService.GetAnalysis(c.Request.Context(), id, service.GetAnalysisOptions{Refresh: refresh})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Export handles GET /documents/export
// @Summary Export document list
// @Description Downloads the document list as an XLSX workbook or a CSV file
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Unknown format"
// @Failure 500 {object} ErrorResponse
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return
	}

	var buf bytes.Buffer
	if err := h.documentService.Export(c.Request.Context(), &buf, format); err != nil {
		HandleError(c, h.logger, err)
		return
	}

	filename := export.BuildFilename(format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
