package port

import (
	"context"

	"docanalyzer/internal/domain"
)

// DocumentRepository persists uploaded documents.
type DocumentRepository interface {
	// Create inserts doc and sets doc.ID to the store-assigned id.
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	// ListSummaries returns every document with its latest classification,
	// newest first.
	ListSummaries(ctx context.Context) ([]domain.DocumentSummary, error)
}

// AnalysisResultRepository persists the latest analysis of each document.
type AnalysisResultRepository interface {
	// Upsert stores result, replacing any earlier result for the same document.
	Upsert(ctx context.Context, result *domain.AnalysisResult) error
	GetByDocumentID(ctx context.Context, documentID int64) (*domain.AnalysisResult, error)
}
