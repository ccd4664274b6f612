package port

import "context"

// TextExtractor turns a stored PDF into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
