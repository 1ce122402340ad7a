package ports

import (
	"context"
	"fromtodk/internal/domain"
)

// Contract for turning free text into ranked knowledge-base candidates.
type EntityResolver interface {
	// Return candidate identifiers ordered by relevance. An empty slice with a
	// nil error means "no match".
	Resolve(ctx context.Context, text string, language string) ([]domain.EntityID, error)
}
