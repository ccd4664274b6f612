package domain

import "strings"

// DocumentType is the label produced by the classifier.
type DocumentType string

const (
	DocumentTypeContract DocumentType = "Contract"
	DocumentTypeInvoice  DocumentType = "Invoice"
	DocumentTypeReport   DocumentType = "Report"
	DocumentTypeOther    DocumentType = "Other"

	// DocumentTypeError is the classifier sentinel for a failed model call.
	DocumentTypeError DocumentType = "Error"
	// DocumentTypeUnknown is reported for documents with no stored analysis.
	DocumentTypeUnknown DocumentType = "Unknown"
)

// ClassifiableTypes lists the labels the model may legitimately return.
var ClassifiableTypes = []DocumentType{
	DocumentTypeContract,
	DocumentTypeInvoice,
	DocumentTypeReport,
	DocumentTypeOther,
}

// ParseDocumentType matches a model label case-insensitively against the
// classifiable set. Unrecognised labels map to DocumentTypeOther.
func ParseDocumentType(label string) DocumentType {
	label = strings.TrimSpace(label)
	for _, t := range ClassifiableTypes {
		if strings.EqualFold(label, string(t)) {
			return t
		}
	}
	return DocumentTypeOther
}

// AllowedExtension is the only accepted upload extension (without dot).
const AllowedExtension = "pdf"

// PDFContentType is the MIME type of accepted uploads.
const PDFContentType = "application/pdf"
