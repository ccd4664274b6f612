package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/port"
)

type analysisResultRepo struct {
	db *sqlx.DB
}

// NewAnalysisResultRepo creates a new SQL-backed AnalysisResultRepository.
func NewAnalysisResultRepo(db *sqlx.DB) port.AnalysisResultRepository {
	return &analysisResultRepo{db: db}
}

// analysisRow mirrors analysis_results. List columns hold JSON-encoded arrays.
type analysisRow struct {
	ID                int64   `db:"id"`
	DocID             int64   `db:"doc_id"`
	DocType           string  `db:"doc_type"`
	Confidence        float64 `db:"confidence"`
	MissingFields     string  `db:"missing_fields"`
	Recommendations   string  `db:"recommendations"`
	IncompleteFields  string  `db:"incomplete_fields"`
	RiskFactors       string  `db:"risk_factors"`
	ComplianceNotes   string  `db:"compliance_notes"`
	CompletenessScore int     `db:"completeness_score"`
	CriticalIssues    string  `db:"critical_issues"`
}

func (r *analysisResultRepo) Upsert(ctx context.Context, result *domain.AnalysisResult) error {
	report := result.Report
	if report == nil {
		report = &domain.AnalysisReport{}
	}
	report.Normalize()

	lists := make([]string, 0, 6)
	for _, l := range [][]string{
		report.MissingFields,
		report.Recommendations,
		report.IncompleteFields,
		report.RiskFactors,
		report.ComplianceNotes,
		report.CriticalIssues,
	} {
		b, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("analysisResultRepo.Upsert: encoding report: %w", err)
		}
		lists = append(lists, string(b))
	}

	query := r.db.Rebind(`INSERT INTO analysis_results (
		doc_id, doc_type, confidence,
		missing_fields, recommendations, incomplete_fields,
		risk_factors, compliance_notes, completeness_score, critical_issues
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (doc_id) DO UPDATE SET
		doc_type = excluded.doc_type,
		confidence = excluded.confidence,
		missing_fields = excluded.missing_fields,
		recommendations = excluded.recommendations,
		incomplete_fields = excluded.incomplete_fields,
		risk_factors = excluded.risk_factors,
		compliance_notes = excluded.compliance_notes,
		completeness_score = excluded.completeness_score,
		critical_issues = excluded.critical_issues,
		created_at = CURRENT_TIMESTAMP
	RETURNING id`)

	err := r.db.QueryRowxContext(ctx, query,
		result.DocumentID, string(result.DocumentType), result.Confidence,
		lists[0], lists[1], lists[2],
		lists[3], lists[4], report.CompletenessScore, lists[5],
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("analysisResultRepo.Upsert: %w", err)
	}
	return nil
}

func (r *analysisResultRepo) GetByDocumentID(ctx context.Context, documentID int64) (*domain.AnalysisResult, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT id, doc_id, doc_type, confidence,
		       missing_fields, recommendations, incomplete_fields,
		       risk_factors, compliance_notes, completeness_score, critical_issues
		FROM analysis_results
		WHERE doc_id = ?`), documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisResultRepo.GetByDocumentID: %w", err)
	}

	return &domain.AnalysisResult{
		ID:           row.ID,
		DocumentID:   row.DocID,
		DocumentType: domain.DocumentType(row.DocType),
		Confidence:   row.Confidence,
		Report:       row.report(),
	}, nil
}

// report decodes the stored lists, or returns nil if any column is not a
// JSON array of strings.
func (row *analysisRow) report() *domain.AnalysisReport {
	report := &domain.AnalysisReport{CompletenessScore: row.CompletenessScore}
	for _, col := range []struct {
		raw string
		dst *[]string
	}{
		{row.MissingFields, &report.MissingFields},
		{row.Recommendations, &report.Recommendations},
		{row.IncompleteFields, &report.IncompleteFields},
		{row.RiskFactors, &report.RiskFactors},
		{row.ComplianceNotes, &report.ComplianceNotes},
		{row.CriticalIssues, &report.CriticalIssues},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil
		}
	}
	report.Normalize()
	return report
}
