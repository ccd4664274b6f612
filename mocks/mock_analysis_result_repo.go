package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/domain"
)

// MockAnalysisResultRepo is a mock implementation of port.AnalysisResultRepository.
type MockAnalysisResultRepo struct {
	mock.Mock
}

func (m *MockAnalysisResultRepo) Upsert(ctx context.Context, result *domain.AnalysisResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockAnalysisResultRepo) GetByDocumentID(ctx context.Context, documentID int64) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}
