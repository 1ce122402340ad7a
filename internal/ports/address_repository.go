package ports

import (
	"context"
	"fromtodk/internal/domain"
)

// Port: read access to the imported Danish address gazetteer.
type AddressRepository interface {
	// Return the coordinate for an address key, or nil when it is unknown.
	Lookup(ctx context.Context, address string) (*domain.Coordinates, error)
}
