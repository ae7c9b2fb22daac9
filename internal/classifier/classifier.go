package classifier

import "context"

// Classifier produces a discrete class index for a piece of text.
// Implementations are safe for concurrent use once constructed.
type Classifier interface {
	Classify(ctx context.Context, text string) (int, error)
}
