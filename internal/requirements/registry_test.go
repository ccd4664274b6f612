package requirements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/requirements"
)

func TestRequiredFields_Contract(t *testing.T) {
	assert.Equal(t,
		[]string{"party_1", "party_2", "signature", "date", "payment_terms"},
		requirements.RequiredFields(domain.DocumentTypeContract))
}

func TestRequiredFields_Invoice(t *testing.T) {
	assert.Equal(t,
		[]string{"invoice_number", "amount", "due_date", "tax", "bill_to", "bill_from"},
		requirements.RequiredFields(domain.DocumentTypeInvoice))
}

func TestRequiredFields_UnsupportedTypes(t *testing.T) {
	for _, docType := range []domain.DocumentType{
		domain.DocumentTypeReport,
		domain.DocumentTypeOther,
		domain.DocumentTypeError,
		domain.DocumentTypeUnknown,
		"invoice",
		"",
	} {
		t.Run(string(docType), func(t *testing.T) {
			fields := requirements.RequiredFields(docType)
			assert.NotNil(t, fields)
			assert.Empty(t, fields)
			assert.False(t, requirements.IsSupported(docType))
		})
	}
}

func TestRequiredFields_ReturnsCopy(t *testing.T) {
	fields := requirements.RequiredFields(domain.DocumentTypeInvoice)
	fields[0] = "tampered"

	assert.Equal(t, "invoice_number", requirements.RequiredFields(domain.DocumentTypeInvoice)[0])
}

func TestFieldDescription(t *testing.T) {
	assert.NotEmpty(t, requirements.FieldDescription(domain.DocumentTypeInvoice, "due_date"))
	assert.NotEmpty(t, requirements.FieldDescription(domain.DocumentTypeContract, "signature"))
	assert.Empty(t, requirements.FieldDescription(domain.DocumentTypeInvoice, "signature"))
	assert.Empty(t, requirements.FieldDescription(domain.DocumentTypeReport, "due_date"))
}

func TestRegistry_Idempotent(t *testing.T) {
	for _, docType := range requirements.SupportedTypes() {
		first := requirements.RequiredFields(docType)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, requirements.RequiredFields(docType))
			for _, f := range first {
				assert.Equal(t,
					requirements.FieldDescription(docType, f),
					requirements.FieldDescription(docType, f))
			}
		}
	}
}

func TestFields_EveryFieldDescribed(t *testing.T) {
	for _, docType := range requirements.SupportedTypes() {
		fields := requirements.Fields(docType)
		assert.Len(t, fields, len(requirements.RequiredFields(docType)))
		for _, f := range fields {
			assert.NotEmpty(t, f.Description, "%s.%s", docType, f.Name)
		}
	}
}
