package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"docanalyzer/internal/config"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/export"
	"docanalyzer/internal/port"
)

// UploadInput is the DTO for an uploaded file. Size is the size declared by
// the client; the body is still limited while it is copied.
type UploadInput struct {
	Filename string
	Size     int64
	File     io.Reader
}

// GetAnalysisOptions controls how a stored analysis is served.
type GetAnalysisOptions struct {
	// Refresh re-runs the gap analyzer on the stored text.
	Refresh bool
}

// DocumentService defines the document analysis contract.
type DocumentService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.AnalysisPayload, error)
	List(ctx context.Context) ([]domain.DocumentSummary, error)
	GetAnalysis(ctx context.Context, id int64, opts GetAnalysisOptions) (*domain.AnalysisPayload, error)
	Export(ctx context.Context, w io.Writer, format export.Format) error
}

type documentService struct {
	docRepo         port.DocumentRepository
	resultRepo      port.AnalysisResultRepository
	storage         port.FileStorage
	archive         port.ObjectStorage // optional
	extractor       port.TextExtractor
	classifier      port.DocumentClassifier
	analyzer        port.GapAnalyzer
	maxBytes        int64
	reanalyzeOnRead bool
	logger          *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation. archive
// may be nil to disable the object-storage copy of uploads.
func NewDocumentService(
	docRepo port.DocumentRepository,
	resultRepo port.AnalysisResultRepository,
	storage port.FileStorage,
	archive port.ObjectStorage,
	extractor port.TextExtractor,
	classifier port.DocumentClassifier,
	analyzer port.GapAnalyzer,
	storageCfg *config.StorageConfig,
	analysisCfg *config.AnalysisConfig,
	logger *zap.Logger,
) DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &documentService{
		docRepo:         docRepo,
		resultRepo:      resultRepo,
		storage:         storage,
		archive:         archive,
		extractor:       extractor,
		classifier:      classifier,
		analyzer:        analyzer,
		maxBytes:        storageCfg.MaxFileSizeMB * 1024 * 1024,
		reanalyzeOnRead: analysisCfg.ReanalyzeOnRead,
		logger:          logger,
	}
}

func (s *documentService) Upload(ctx context.Context, input UploadInput) (*domain.AnalysisPayload, error) {
	if input.File == nil {
		return nil, domain.ErrNoFile
	}
	if input.Filename == "" {
		return nil, domain.ErrNoFileSelected
	}
	if !hasAllowedExtension(input.Filename) {
		return nil, domain.ErrUnsupportedFileType
	}
	filename, err := SanitizeFilename(input.Filename)
	if err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	body := input.File
	if s.maxBytes > 0 {
		body = &sizeLimitedReader{r: input.File, remaining: s.maxBytes}
	}
	path, err := s.storage.Save(ctx, filename, body)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, domain.ErrFileTooLarge
		}
		s.logger.Error("documentService.Upload: saving file failed", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	s.archiveUpload(ctx, filename)

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		s.logger.Warn("documentService.Upload: text extraction failed", zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	// The document is committed on its own so a later model or store failure
	// never loses it.
	doc := &domain.Document{Filename: filename, Content: text}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	s.logger.Info("documentService.Upload: document stored",
		zap.Int64("document_id", doc.ID),
		zap.String("filename", filename),
		zap.Int("chars", len(text)),
	)

	classification := s.classifier.Classify(ctx, text)
	if classification.DocumentType == "" {
		classification.DocumentType = domain.DocumentTypeOther
	}

	report := s.analyzer.Analyze(ctx, text, classification.DocumentType)
	if report == nil {
		report = domain.DegradedReport()
	}
	report.Normalize()

	result := &domain.AnalysisResult{
		DocumentID:   doc.ID,
		DocumentType: classification.DocumentType,
		Confidence:   classification.ConfidenceScore,
		Report:       report,
	}
	if err := s.resultRepo.Upsert(ctx, result); err != nil {
		s.logger.Error("documentService.Upload: storing analysis failed",
			zap.Int64("document_id", doc.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("storing analysis result: %w", err)
	}

	return &domain.AnalysisPayload{
		Message:        domain.UploadSuccessMessage,
		DocumentID:     doc.ID,
		Filename:       doc.Filename,
		Classification: classification,
		Analysis:       report,
	}, nil
}

// archiveUpload copies the stored file to object storage. Failures are
// logged and never fail the upload.
func (s *documentService) archiveUpload(ctx context.Context, key string) {
	if s.archive == nil {
		return
	}
	rc, err := s.storage.Open(ctx, key)
	if err != nil {
		s.logger.Warn("documentService.Upload: reopening file for archive failed", zap.String("key", key), zap.Error(err))
		return
	}
	defer rc.Close()

	out, err := s.archive.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        rc,
		ContentType: domain.PDFContentType,
	})
	if err != nil {
		s.logger.Warn("documentService.Upload: archive upload failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger.Debug("documentService.Upload: archived", zap.String("key", key), zap.String("location", out.Location))
}

func (s *documentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	summaries, err := s.docRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	if summaries == nil {
		summaries = []domain.DocumentSummary{}
	}
	return summaries, nil
}

func (s *documentService) GetAnalysis(ctx context.Context, id int64, opts GetAnalysisOptions) (*domain.AnalysisPayload, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored, err := s.resultRepo.GetByDocumentID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrAnalysisNotFound) {
		return nil, fmt.Errorf("loading analysis result: %w", err)
	}

	classification := domain.Classification{DocumentType: domain.DocumentTypeUnknown}
	if stored != nil {
		classification = domain.Classification{
			DocumentType:    stored.DocumentType,
			ConfidenceScore: stored.Confidence,
		}
	}

	var report *domain.AnalysisReport
	if stored == nil || s.reanalyzeOnRead || opts.Refresh {
		s.logger.Debug("documentService.GetAnalysis: re-analyzing document",
			zap.Int64("document_id", id),
			zap.String("document_type", string(classification.DocumentType)),
		)
		report = s.analyzer.Analyze(ctx, doc.Content, classification.DocumentType)
	} else {
		report = stored.Report
	}

	if report == nil {
		report = domain.FetchFallbackReport()
	}
	report.Normalize()

	return &domain.AnalysisPayload{
		DocumentID:     doc.ID,
		Filename:       doc.Filename,
		Classification: classification,
		Analysis:       report,
	}, nil
}

func (s *documentService) Export(ctx context.Context, w io.Writer, format export.Format) error {
	summaries, err := s.List(ctx)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, summaries); err != nil {
		return fmt.Errorf("exporting documents: %w", err)
	}
	return nil
}

// sizeLimitedReader fails with domain.ErrFileTooLarge once more than
// remaining bytes have been read.
type sizeLimitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, domain.ErrFileTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, domain.ErrFileTooLarge
	}
	return n, err
}
