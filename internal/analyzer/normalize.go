package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"docanalyzer/internal/domain"
)

var errNotObject = errors.New("model response is not a JSON object")

// stripCodeFences removes a surrounding Markdown code fence, with or without
// a language tag. Models sometimes add one even in JSON mode.
func stripCodeFences(src string) string {
	s := strings.TrimSpace(src)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return strings.Trim(s, "`")
	}
	body := lines[1:]
	if strings.TrimSpace(body[len(body)-1]) == "```" {
		body = body[:len(body)-1]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// decodeReport parses a raw gap-analysis answer into a fully populated report.
// Absent keys and values of the wrong type fall back to empty lists and a
// zero score; the score is rounded and clamped into [0,100].
func decodeReport(raw string) (*domain.AnalysisReport, error) {
	var parsed any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, errNotObject
	}

	report := &domain.AnalysisReport{
		MissingFields:     stringList(obj["missing_fields"]),
		IncompleteFields:  stringList(obj["incomplete_fields"]),
		Recommendations:   stringList(obj["recommendations"]),
		RiskFactors:       stringList(obj["risk_factors"]),
		ComplianceNotes:   stringList(obj["compliance_notes"]),
		CompletenessScore: score(obj["completeness_score"]),
		CriticalIssues:    stringList(obj["critical_issues"]),
	}
	report.Normalize()
	return report, nil
}

// stringList keeps the string elements of a JSON array. Anything else is [].
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func score(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		return 0
	}
	return int(clamp(math.Round(f), 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
