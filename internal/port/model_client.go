package port

import "context"

// ModelClient abstracts a language-model service that answers a single
// prompt with a JSON document.
type ModelClient interface {
	// Generate sends prompt in JSON-response mode and returns the raw response text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Model returns the model identifier used for requests.
	Model() string
}
