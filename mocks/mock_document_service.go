package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/export"
	"docanalyzer/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input service.UploadInput) (*domain.AnalysisPayload, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisPayload), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentSummary), args.Error(1)
}

func (m *MockDocumentService) GetAnalysis(ctx context.Context, id int64, opts service.GetAnalysisOptions) (*domain.AnalysisPayload, error) {
	args := m.Called(ctx, id, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisPayload), args.Error(1)
}

func (m *MockDocumentService) Export(ctx context.Context, w io.Writer, format export.Format) error {
	args := m.Called(ctx, w, format)
	return args.Error(0)
}
