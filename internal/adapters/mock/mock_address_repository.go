package mock

import (
	"context"
	"fromtodk/internal/domain"
)

type AddressRepository struct {
	m   map[string]domain.Coordinates
	Err error
}

func NewAddressRepository(m map[string]domain.Coordinates) *AddressRepository {
	return &AddressRepository{m: m}
}

func (r *AddressRepository) Lookup(ctx context.Context, address string) (*domain.Coordinates, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.m[address]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
