// Package analyzer turns document text into a classification and a
// completeness report by prompting a language model.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/observability/metrics"
	"docanalyzer/internal/port"
)

// Model call operations, used as the metric label.
const (
	OperationClassify = "classify"
	OperationAnalyze  = "analyze"
)

// CallRecorder observes language-model round trips.
type CallRecorder interface {
	ObserveModelCall(operation, model, outcome string, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveModelCall(string, string, string, time.Duration) {}

const classificationSchema = `{
  "type": "object",
  "required": ["document_type", "confidence_score"],
  "properties": {
    "document_type": {"type": "string"},
    "confidence_score": {"type": "number"}
  }
}`

var classificationValidator = mustCompileSchema("classification.json", classificationSchema)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// Classifier implements port.DocumentClassifier.
type Classifier struct {
	client   port.ModelClient
	recorder CallRecorder
	logger   *zap.Logger
}

// NewClassifier creates a Classifier. recorder and logger may be nil.
func NewClassifier(client port.ModelClient, recorder CallRecorder, logger *zap.Logger) *Classifier {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, recorder: recorder, logger: logger}
}

// Classify labels text. Any model or parse failure yields the Error sentinel;
// there is no retry.
func (c *Classifier) Classify(ctx context.Context, text string) domain.Classification {
	start := time.Now()
	raw, err := c.client.Generate(ctx, BuildClassificationPrompt(text))
	if err != nil {
		c.recorder.ObserveModelCall(OperationClassify, c.client.Model(), metrics.OutcomeError, time.Since(start))
		c.logger.Warn("classifier.Classify: model call failed", zap.Error(err))
		return domain.ErrorClassification()
	}

	result, err := parseClassification(raw)
	if err != nil {
		c.recorder.ObserveModelCall(OperationClassify, c.client.Model(), metrics.OutcomeInvalid, time.Since(start))
		c.logger.Warn("classifier.Classify: invalid model response", zap.Error(err))
		return domain.ErrorClassification()
	}

	c.recorder.ObserveModelCall(OperationClassify, c.client.Model(), metrics.OutcomeSuccess, time.Since(start))
	c.logger.Debug("classifier.Classify: classified document",
		zap.String("document_type", string(result.DocumentType)),
		zap.Float64("confidence", result.ConfidenceScore),
	)
	return result
}

func parseClassification(raw string) (domain.Classification, error) {
	var parsed any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return domain.Classification{}, fmt.Errorf("decoding model response: %w", err)
	}
	if err := classificationValidator.Validate(parsed); err != nil {
		return domain.Classification{}, fmt.Errorf("response does not match schema: %w", err)
	}

	obj := parsed.(map[string]any)
	label, _ := obj["document_type"].(string)
	confidence, _ := obj["confidence_score"].(float64)

	return domain.Classification{
		DocumentType:    domain.ParseDocumentType(label),
		ConfidenceScore: clamp(confidence, 0, 1),
	}, nil
}
