package port

import (
	"context"

	"docanalyzer/internal/domain"
)

// DocumentClassifier labels a document. It never fails; model errors yield
// domain.ErrorClassification.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string) domain.Classification
}

// GapAnalyzer reports missing and incomplete required fields. Model errors
// yield domain.DegradedReport.
type GapAnalyzer interface {
	Analyze(ctx context.Context, text string, docType domain.DocumentType) *domain.AnalysisReport
}
