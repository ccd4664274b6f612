package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/export"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/service"
	"docanalyzer/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(h *handler.DocumentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/upload", h.Upload)
	r.GET("/documents", h.List)
	r.GET("/documents/export", h.Export)
	r.GET("/analysis/:id", h.GetAnalysis)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDocumentHandler_Upload_Success(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	payload := &domain.AnalysisPayload{
		Message:        domain.UploadSuccessMessage,
		DocumentID:     1,
		Filename:       "invoice.pdf",
		Classification: domain.Classification{DocumentType: domain.DocumentTypeInvoice, ConfidenceScore: 0.9},
		Analysis:       domain.NoSchemaReport(),
	}
	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Filename == "invoice.pdf" && in.Size == 8 && in.File != nil
	})).Return(payload, nil)

	body, contentType := multipartBody(t, "file", "invoice.pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got domain.AnalysisPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "File uploaded and analyzed successfully", got.Message)
	assert.Equal(t, int64(1), got.DocumentID)
	assert.Equal(t, domain.DocumentTypeInvoice, got.Classification.DocumentType)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Upload_MissingFilePart(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.File == nil
	})).Return(nil, domain.ErrNoFile)

	body, contentType := multipartBody(t, "document", "invoice.pdf", []byte("%PDF"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "NO_FILE", resp.Code)
	assert.Equal(t, "No file part in the request", resp.Error)
}

func TestDocumentHandler_Upload_NotMultipart(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	mockSvc.On("Upload", mock.Anything, service.UploadInput{}).Return(nil, domain.ErrNoFile)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_FILE", decodeError(t, w).Code)
}

func TestDocumentHandler_Upload_EmptyFilename(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.Filename == "" && in.File != nil
	})).Return(nil, domain.ErrNoFileSelected)

	body, contentType := multipartBody(t, "file", "", nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_FILE_SELECTED", decodeError(t, w).Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Upload_BodyOverLimit(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 1024, nil)

	body, contentType := multipartBody(t, "file", "big.pdf", bytes.Repeat([]byte("a"), 3<<20))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", decodeError(t, w).Code)
	mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Upload_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unsupported type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"invalid filename", domain.ErrInvalidFilename, http.StatusBadRequest, "INVALID_FILENAME"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"extraction", domain.ErrExtractionFailed, http.StatusInternalServerError, "EXTRACTION_FAILED"},
		{"store", errors.New("database is locked"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockDocumentService)
			h := handler.NewDocumentHandler(mockSvc, 0, nil)
			mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartBody(t, "file", "notes.txt", []byte("hello"))
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			newTestRouter(h).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestDocumentHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	mockSvc.On("List", mock.Anything).Return([]domain.DocumentSummary{
		{DocumentID: 2, Filename: "b.pdf", Classification: domain.Classification{DocumentType: domain.DocumentTypeUnknown}},
		{DocumentID: 1, Filename: "a.pdf", Classification: domain.Classification{DocumentType: domain.DocumentTypeInvoice, ConfidenceScore: 0.9}},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"document_id":2,"filename":"b.pdf","classification":{"document_type":"Unknown","confidence_score":0}},
		{"document_id":1,"filename":"a.pdf","classification":{"document_type":"Invoice","confidence_score":0.9}}
	]`, w.Body.String())
}

func TestDocumentHandler_List_Empty(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)
	mockSvc.On("List", mock.Anything).Return([]domain.DocumentSummary{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestDocumentHandler_GetAnalysis(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	mockSvc.On("GetAnalysis", mock.Anything, int64(7), service.GetAnalysisOptions{Refresh: true}).
		Return(&domain.AnalysisPayload{DocumentID: 7, Filename: "c.pdf", Analysis: domain.FetchFallbackReport()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/analysis/7?refresh=true", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotContains(t, got, "message")
	assert.Equal(t, []any{"Failed to analyze document"}, got["analysis"].(map[string]any)["critical_issues"])
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_GetAnalysis_InvalidID(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/analysis/abc", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeError(t, w).Code)
	mockSvc.AssertNotCalled(t, "GetAnalysis", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_GetAnalysis_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)
	mockSvc.On("GetAnalysis", mock.Anything, int64(999), service.GetAnalysisOptions{}).
		Return(nil, domain.ErrDocumentNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/analysis/999", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp.Code)
	assert.Equal(t, "Document not found", resp.Error)
}

func TestDocumentHandler_GetAnalysis_InternalErrorCarriesMessage(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)
	mockSvc.On("GetAnalysis", mock.Anything, int64(1), service.GetAnalysisOptions{}).
		Return(nil, errors.New("loading analysis result: disk I/O error"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/analysis/1", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.Contains(t, resp.Error, "disk I/O error")
}

func TestDocumentHandler_Export_CSV(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)
	mockSvc.On("Export", mock.Anything, mock.Anything, export.FormatCSV).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "Document ID,Filename\n")
		}).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/export?format=csv", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="documents_\d{4}-\d{2}-\d{2}\.csv"$`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Document ID,Filename\n", w.Body.String())
}

func TestDocumentHandler_Export_DefaultsToXLSX(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)
	mockSvc.On("Export", mock.Anything, mock.Anything, export.FormatXLSX).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/export", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Export_InvalidFormat(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, 0, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/export?format=pdf", http.NoBody)
	newTestRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decodeError(t, w).Code)
}
