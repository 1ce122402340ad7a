package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fromtodk/internal/domain"
	"sort"
	"strings"
)

// Postgres-backed implementation of the AddressRepository port.
type PostgresAddressRepository struct{ DB *sql.DB }

func NewPostgresAddressRepository(db *sql.DB) *PostgresAddressRepository {
	return &PostgresAddressRepository{DB: db}
}

// Return the coordinate stored for address, matching case-insensitively.
// A nil coordinate with a nil error means the address is unknown.
func (p *PostgresAddressRepository) Lookup(ctx context.Context, address string) (*domain.Coordinates, error) {
	if p.DB == nil {
		return nil, errors.New("postgres address repository: DB is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	query := `
	SELECT
		lat,
		lon
	FROM addresses
	WHERE lower(address) = lower($1)
	LIMIT 1;
	`

	var c domain.Coordinates
	err := p.DB.QueryRowContext(ctx, query, address).Scan(&c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup address %q: %w", address, err)
	}

	return &c, nil
}

// Upsert every address -> coordinate pair in one transaction and return the
// number of rows written.
func (p *PostgresAddressRepository) ImportAddresses(
	ctx context.Context,
	addresses map[string]domain.Coordinates,
) (int, error) {
	if p.DB == nil {
		return 0, errors.New("import addresses: DB is nil")
	}

	keys := make([]string, 0, len(addresses))
	for k := range addresses {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import addresses: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO addresses (
		address,
		lat,
		lon
	)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("import addresses: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, k := range keys {
		c := addresses[k]
		if _, err := stmt.ExecContext(ctx, k, c.Lat, c.Lon); err != nil {
			return 0, fmt.Errorf("import addresses: upsert %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import addresses: commit tx: %w", err)
	}

	return len(keys), nil
}
