package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/domain"
)

var analysisColumns = []string{
	"id", "doc_id", "doc_type", "confidence",
	"missing_fields", "recommendations", "incomplete_fields",
	"risk_factors", "compliance_notes", "completeness_score", "critical_issues",
}

func TestAnalysisResultRepo_Upsert_EncodesLists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisResultRepo(db)

	mock.ExpectQuery("INSERT INTO analysis_results").
		WithArgs(int64(5), "Invoice", 0.9,
			`["due_date","tax"]`, `["Add a due date"]`, `[]`,
			`[]`, `[]`, 40, `["Missing tax"]`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	result := &domain.AnalysisResult{
		DocumentID:   5,
		DocumentType: domain.DocumentTypeInvoice,
		Confidence:   0.9,
		Report: &domain.AnalysisReport{
			MissingFields:     []string{"due_date", "tax"},
			Recommendations:   []string{"Add a due date"},
			CompletenessScore: 40,
			CriticalIssues:    []string{"Missing tax"},
		},
	}
	require.NoError(t, repo.Upsert(context.Background(), result))

	assert.Equal(t, int64(11), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalysisResultRepo_GetByDocumentID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisResultRepo(db)

	mock.ExpectQuery("FROM analysis_results").
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDocumentID(context.Background(), 4)

	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestAnalysisResultRepo_GetByDocumentID_Decodes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisResultRepo(db)

	mock.ExpectQuery("FROM analysis_results").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			int64(11), int64(5), "Invoice", 0.9,
			`["due_date"]`, `["Add a due date"]`, `null`,
			`[]`, `["note"]`, 40, `[]`))

	got, err := repo.GetByDocumentID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeInvoice, got.DocumentType)
	require.NotNil(t, got.Report)
	assert.Equal(t, []string{"due_date"}, got.Report.MissingFields)
	assert.Equal(t, []string{}, got.Report.IncompleteFields)
	assert.Equal(t, []string{"note"}, got.Report.ComplianceNotes)
	assert.Equal(t, 40, got.Report.CompletenessScore)
}

func TestAnalysisResultRepo_GetByDocumentID_CorruptReport(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnalysisResultRepo(db)

	mock.ExpectQuery("FROM analysis_results").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(analysisColumns).AddRow(
			int64(11), int64(5), "Contract", 0.5,
			`not json`, `[]`, `[]`, `[]`, `[]`, 0, `[]`))

	got, err := repo.GetByDocumentID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeContract, got.DocumentType)
	assert.Nil(t, got.Report)
}
