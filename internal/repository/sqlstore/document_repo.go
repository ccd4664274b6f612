package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new SQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	query := r.db.Rebind(`INSERT INTO documents (filename, content) VALUES (?, ?) RETURNING id`)
	if err := r.db.QueryRowxContext(ctx, query, doc.Filename, doc.Content).Scan(&doc.ID); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		r.db.Rebind(`SELECT id, filename, content FROM documents WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

type summaryRow struct {
	DocumentID int64   `db:"document_id"`
	Filename   string  `db:"filename"`
	DocType    string  `db:"doc_type"`
	Confidence float64 `db:"confidence"`
}

func (r *documentRepo) ListSummaries(ctx context.Context) ([]domain.DocumentSummary, error) {
	var rows []summaryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT d.id AS document_id,
		       d.filename,
		       COALESCE(r.doc_type, 'Unknown') AS doc_type,
		       COALESCE(r.confidence, 0.0) AS confidence
		FROM documents d
		LEFT JOIN analysis_results r ON r.doc_id = d.id
		ORDER BY d.created_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListSummaries: %w", err)
	}

	summaries := make([]domain.DocumentSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.DocumentSummary{
			DocumentID: row.DocumentID,
			Filename:   row.Filename,
			Classification: domain.Classification{
				DocumentType:    domain.DocumentType(row.DocType),
				ConfidenceScore: row.Confidence,
			},
		})
	}
	return summaries, nil
}
