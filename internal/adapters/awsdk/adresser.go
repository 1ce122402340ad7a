// Package awsdk reads the "adresser" CSV export of the Danish address web
// service (aws.dk).
package awsdk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"fromtodk/internal/domain"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	colStreet     = "vejnavn"
	colHouseNo    = "husnr"
	colPostcode   = "postnr"
	colLatitude   = "wgs84koordinat_bredde"
	colLongitude  = "wgs84koordinat_længde"
	utf8BOM       = "\ufeff"
	defaultSubdir = "data/awsdk/adresser"
)

// DefaultAdresserPath is ~/data/awsdk/adresser.
func DefaultAdresserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultSubdir
	}
	return filepath.Join(home, filepath.FromSlash(defaultSubdir))
}

// Row is one address record keyed by column name.
type Row map[string]string

// Key is "<vejnavn> <husnr> <postnr>", e.g. "Lyngby Hovedgade 1 2800".
func (r Row) Key() string {
	return fmt.Sprintf("%s %s %s", r[colStreet], r[colHouseNo], r[colPostcode])
}

func (r Row) Coordinates() (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r[colLatitude]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse %s: %w", colLatitude, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r[colLongitude]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse %s: %w", colLongitude, err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

type AdresserReader struct {
	csv    *csv.Reader
	header []string
	line   int
}

// NewAdresserReader consumes the header row of r.
func NewAdresserReader(r io.Reader) (*AdresserReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("adresser: missing header row")
		}
		return nil, fmt.Errorf("adresser: read header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
	}

	for _, required := range []string{colStreet, colHouseNo, colPostcode, colLatitude, colLongitude} {
		if !contains(cols, required) {
			return nil, fmt.Errorf("adresser: header has no %q column", required)
		}
	}

	return &AdresserReader{csv: cr, header: cols, line: 1}, nil
}

func (a *AdresserReader) Header() []string {
	return append([]string(nil), a.header...)
}

// Next returns the next row, or io.EOF after the last one.
func (a *AdresserReader) Next() (Row, error) {
	record, err := a.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("adresser: read line %d: %w", a.line+1, err)
	}
	a.line++

	row := make(Row, len(a.header))
	for i, col := range a.header {
		if i < len(record) {
			row[col] = record[i]
		}
	}
	return row, nil
}

// AddressCoordinateMap reads every remaining row into address key ->
// coordinate. Rows without parsable coordinates are skipped and counted.
// Later rows win on duplicate keys.
func (a *AdresserReader) AddressCoordinateMap() (m map[string]domain.Coordinates, skipped int, err error) {
	m = make(map[string]domain.Coordinates)
	for {
		row, err := a.Next()
		if errors.Is(err, io.EOF) {
			return m, skipped, nil
		}
		if err != nil {
			return nil, skipped, err
		}

		coord, err := row.Coordinates()
		if err != nil {
			skipped++
			continue
		}
		m[row.Key()] = coord
	}
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
