package ports

import (
	"context"
	"fromtodk/internal/domain"
)

// Contract consumed by the CLI and HTTP surfaces for one from/to lookup.
type DistanceService interface {
	LookupDistance(ctx context.Context, from, to string) (*domain.DistanceResult, error)
}
