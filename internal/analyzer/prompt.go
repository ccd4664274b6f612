package analyzer

import (
	"fmt"
	"strings"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/requirements"
)

// MaxPromptChars bounds how much document text is sent to the model.
// Anything past this offset is never considered.
const MaxPromptChars = 8000

// truncateRunes returns the first n characters of s without splitting a
// multi-byte sequence.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BuildClassificationPrompt returns the prompt asking the model to label text.
func BuildClassificationPrompt(text string) string {
	labels := make([]string, 0, len(domain.ClassifiableTypes))
	for _, t := range domain.ClassifiableTypes {
		labels = append(labels, fmt.Sprintf("%q", string(t)))
	}

	return `You are a document classification assistant. Analyze the following document text and classify its type.
The possible types are ` + strings.Join(labels, ", ") + `.

Return ONLY a JSON object with exactly two keys:
- "document_type": one of the possible types above (string)
- "confidence_score": your confidence in the classification, a number between 0.0 and 1.0

Do not wrap the JSON in markdown or code fences.

Document Text:
---
` + truncateRunes(text, MaxPromptChars) + `
---`
}

// BuildGapAnalysisPrompt returns the prompt asking the model to assess text
// against the required fields of docType.
func BuildGapAnalysisPrompt(docType domain.DocumentType, fields []requirements.Field, text string) string {
	var sb strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&sb, "- %s: %s\n", f.Name, f.Description)
	}

	return `You are an expert document analyst. Analyze the text from a document identified as a "` + string(docType) + `".

The required fields for this document type are:
` + sb.String() + `
Assess the document along these dimensions:
1. Presence: which required fields are absent from the text.
2. Completeness quality: which fields are present but vague, partial or malformed.
3. Legal compliance: whether the language needed for the document to be enforceable or compliant is present.
4. Risk factors: ambiguities, unusual clauses or omissions that expose a party to risk.
5. Best practices: deviations from how a well-formed ` + string(docType) + ` is normally drafted.

Return ONLY a JSON object with exactly these keys:
- "missing_fields": list of required field names that are missing
- "incomplete_fields": list of required field names that are present but incomplete
- "recommendations": list of specific, actionable suggestions for completing the document
- "risk_factors": list of identified risks
- "compliance_notes": list of legal or regulatory observations
- "completeness_score": integer from 0 to 100 estimating overall completeness
- "critical_issues": list of problems that must be fixed before the document is usable

Use an empty list when a category has nothing to report. Do not wrap the JSON in markdown or code fences.

Document Text:
---
` + truncateRunes(text, MaxPromptChars) + `
---`
}
