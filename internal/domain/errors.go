package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrNoFile              = errors.New("no file part in the request")
	ErrNoFileSelected      = errors.New("no file selected")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrInvalidFilename     = errors.New("filename is empty after sanitization")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("saving uploaded file failed")
	ErrExtractionFailed    = errors.New("could not extract text from PDF")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrAnalysisNotFound    = errors.New("analysis not found for document")
)
