package ports

import (
	"context"
	"fromtodk/internal/domain"
)

// Contract for fetching WGS84 coordinates of knowledge-base entities.
type CoordinateExtractor interface {
	// Return one coordinate per input identifier, in input order.
	// A nil element means the entity has no coordinate.
	CoordinatesFor(ctx context.Context, ids []domain.EntityID) ([]*domain.Coordinates, error)
}
