package domain

// Document is a single uploaded PDF and its extracted text. Content is
// immutable once stored.
type Document struct {
	ID       int64  `db:"id" json:"document_id"`
	Filename string `db:"filename" json:"filename"`
	Content  string `db:"content" json:"-"`
}

// Classification is the classifier verdict for a document.
type Classification struct {
	DocumentType    DocumentType `json:"document_type"`
	ConfidenceScore float64      `json:"confidence_score"`
}

// ErrorClassification is returned when the model call fails.
func ErrorClassification() Classification {
	return Classification{DocumentType: DocumentTypeError, ConfidenceScore: 0.0}
}

// AnalysisReport is the completeness report produced by the gap analyzer.
// Every field is always present; lists are never nil after Normalize.
type AnalysisReport struct {
	MissingFields     []string `json:"missing_fields"`
	IncompleteFields  []string `json:"incomplete_fields"`
	Recommendations   []string `json:"recommendations"`
	RiskFactors       []string `json:"risk_factors"`
	ComplianceNotes   []string `json:"compliance_notes"`
	CompletenessScore int      `json:"completeness_score"`
	CriticalIssues    []string `json:"critical_issues"`
}

// Normalize replaces nil lists with empty ones and clamps the score into [0,100].
func (r *AnalysisReport) Normalize() {
	r.MissingFields = nonNil(r.MissingFields)
	r.IncompleteFields = nonNil(r.IncompleteFields)
	r.Recommendations = nonNil(r.Recommendations)
	r.RiskFactors = nonNil(r.RiskFactors)
	r.ComplianceNotes = nonNil(r.ComplianceNotes)
	r.CriticalIssues = nonNil(r.CriticalIssues)
	switch {
	case r.CompletenessScore < 0:
		r.CompletenessScore = 0
	case r.CompletenessScore > 100:
		r.CompletenessScore = 100
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Fixed report texts.
const (
	NoSchemaRecommendation  = "Document type does not have a defined set of required fields."
	AnalysisErrorField      = "Analysis Error"
	AnalysisErrorRecommend  = "Could not perform analysis due to an API error."
	FailedToAnalyzeDocument = "Failed to analyze document"
	UploadSuccessMessage    = "File uploaded and analyzed successfully"
)

// NoSchemaReport is returned for document types without required fields.
func NoSchemaReport() *AnalysisReport {
	r := &AnalysisReport{Recommendations: []string{NoSchemaRecommendation}}
	r.Normalize()
	return r
}

// DegradedReport is returned when the model call or its parsing fails.
func DegradedReport() *AnalysisReport {
	r := &AnalysisReport{
		MissingFields:   []string{AnalysisErrorField},
		Recommendations: []string{AnalysisErrorRecommend},
	}
	r.Normalize()
	return r
}

// FetchFallbackReport substitutes a malformed or missing report on read.
func FetchFallbackReport() *AnalysisReport {
	r := &AnalysisReport{CriticalIssues: []string{FailedToAnalyzeDocument}}
	r.Normalize()
	return r
}

// AnalysisResult is the stored outcome of classifying and analyzing a Document.
// At most one exists per Document; a new upload replaces it. Report is nil
// when the stored report columns cannot be decoded.
type AnalysisResult struct {
	ID           int64
	DocumentID   int64
	DocumentType DocumentType
	Confidence   float64
	Report       *AnalysisReport
}

// DocumentSummary is one row of the document listing.
type DocumentSummary struct {
	DocumentID     int64          `json:"document_id"`
	Filename       string         `json:"filename"`
	Classification Classification `json:"classification"`
}

// AnalysisPayload is the composite response for upload and fetch.
type AnalysisPayload struct {
	Message        string          `json:"message,omitempty"`
	DocumentID     int64           `json:"document_id"`
	Filename       string          `json:"filename"`
	Classification Classification  `json:"classification"`
	Analysis       *AnalysisReport `json:"analysis"`
}
