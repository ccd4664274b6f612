// Package requirements holds the static per-type schema of required fields
// that the gap analyzer checks documents against.
package requirements

import "docanalyzer/internal/domain"

// Field is a required field and its human-readable description.
type Field struct {
	Name        string
	Description string
}

// registry maps each supported document type to its ordered required fields.
var registry = map[domain.DocumentType][]Field{
	domain.DocumentTypeContract: {
		{Name: "party_1", Description: "Full legal name and address of the first contracting party"},
		{Name: "party_2", Description: "Full legal name and address of the second contracting party"},
		{Name: "signature", Description: "Signatures of authorized representatives of all parties"},
		{Name: "date", Description: "Execution or effective date of the agreement"},
		{Name: "payment_terms", Description: "Amounts, schedule and method of payment between the parties"},
	},
	domain.DocumentTypeInvoice: {
		{Name: "invoice_number", Description: "Unique identifier assigned to the invoice by the issuer"},
		{Name: "amount", Description: "Total amount payable including currency"},
		{Name: "due_date", Description: "Date by which payment must be received"},
		{Name: "tax", Description: "Applicable tax amounts and rates, or an explicit tax exemption"},
		{Name: "bill_to", Description: "Name and address of the customer being billed"},
		{Name: "bill_from", Description: "Name and address of the issuing business"},
	},
}

// IsSupported reports whether docType has a defined set of required fields.
func IsSupported(docType domain.DocumentType) bool {
	_, ok := registry[docType]
	return ok
}

// SupportedTypes returns the document types with a defined schema.
func SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeContract, domain.DocumentTypeInvoice}
}

// RequiredFields returns the ordered required field names for docType, or an
// empty list when the type has no schema.
func RequiredFields(docType domain.DocumentType) []string {
	fields := registry[docType]
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

// FieldDescription returns the description of field for docType, or "" when
// either is unknown.
func FieldDescription(docType domain.DocumentType, field string) string {
	for _, f := range registry[docType] {
		if f.Name == field {
			return f.Description
		}
	}
	return ""
}

// Fields returns a copy of the ordered field definitions for docType.
func Fields(docType domain.DocumentType) []Field {
	fields := registry[docType]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}
