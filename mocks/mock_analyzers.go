package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/domain"
)

// MockClassifier is a mock implementation of port.DocumentClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string) domain.Classification {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.Classification)
}

// MockGapAnalyzer is a mock implementation of port.GapAnalyzer.
type MockGapAnalyzer struct {
	mock.Mock
}

func (m *MockGapAnalyzer) Analyze(ctx context.Context, text string, docType domain.DocumentType) *domain.AnalysisReport {
	args := m.Called(ctx, text, docType)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.AnalysisReport)
}
