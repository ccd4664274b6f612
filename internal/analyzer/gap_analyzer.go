package analyzer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/observability/metrics"
	"docanalyzer/internal/port"
	"docanalyzer/internal/requirements"
)

// GapAnalyzer implements port.GapAnalyzer.
type GapAnalyzer struct {
	client   port.ModelClient
	recorder CallRecorder
	logger   *zap.Logger
}

// NewGapAnalyzer creates a GapAnalyzer. recorder and logger may be nil.
func NewGapAnalyzer(client port.ModelClient, recorder CallRecorder, logger *zap.Logger) *GapAnalyzer {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GapAnalyzer{client: client, recorder: recorder, logger: logger}
}

// Analyze checks text against the required fields of docType. Types without
// a schema get a fixed report and no model call. The result is never nil.
func (g *GapAnalyzer) Analyze(ctx context.Context, text string, docType domain.DocumentType) *domain.AnalysisReport {
	if !requirements.IsSupported(docType) {
		return domain.NoSchemaReport()
	}

	start := time.Now()
	prompt := BuildGapAnalysisPrompt(docType, requirements.Fields(docType), text)
	raw, err := g.client.Generate(ctx, prompt)
	if err != nil {
		g.recorder.ObserveModelCall(OperationAnalyze, g.client.Model(), metrics.OutcomeError, time.Since(start))
		g.logger.Warn("gapAnalyzer.Analyze: model call failed",
			zap.String("document_type", string(docType)),
			zap.Error(err),
		)
		return domain.DegradedReport()
	}

	report, err := decodeReport(raw)
	if err != nil {
		g.recorder.ObserveModelCall(OperationAnalyze, g.client.Model(), metrics.OutcomeInvalid, time.Since(start))
		g.logger.Warn("gapAnalyzer.Analyze: invalid model response",
			zap.String("document_type", string(docType)),
			zap.Error(err),
		)
		return domain.DegradedReport()
	}

	g.recorder.ObserveModelCall(OperationAnalyze, g.client.Model(), metrics.OutcomeSuccess, time.Since(start))
	return report
}
