package wikidata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fromtodk/internal/domain"
	"fromtodk/internal/platform/obs"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Mode selects how the SPARQL strategy treats rows it cannot turn into a
// coordinate.
type Mode int

const (
	// ModeLenient reports an absent coordinate for empty results, missing
	// bindings and unparsable numbers. Callers cannot tell "entity has no
	// coordinate" from "query or row malformed".
	ModeLenient Mode = iota
	// ModeStrict returns an error wrapping domain.ErrMalformedRow instead.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

const coordinateQueryPattern = `SELECT ?latitude ?longitude WHERE {
  wd:%s p:P625 ?coordinate_statement .
  ?coordinate_statement psv:P625 ?coordinate_node .
  ?coordinate_node wikibase:geoLatitude ?latitude .
  ?coordinate_node wikibase:geoLongitude ?longitude .
}`

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// SPARQLExtractor implements ports.CoordinateExtractor by asking the query
// service for the latitude/longitude of one identifier at a time. Only the
// direct P625 statement is consulted.
type SPARQLExtractor struct {
	client *Client
	mode   Mode
}

func NewSPARQLExtractor(client *Client, mode Mode) (*SPARQLExtractor, error) {
	if client.sparqlURL == "" {
		return nil, errors.New("sparql extractor: query service url is empty")
	}
	return &SPARQLExtractor{client: client, mode: mode}, nil
}

func (e *SPARQLExtractor) CoordinatesFor(
	ctx context.Context,
	ids []domain.EntityID,
) (_ []*domain.Coordinates, err error) {
	defer obs.Time(ctx, e.client.log, "wikidata.CoordinatesFor.sparql")(&err)

	out := make([]*domain.Coordinates, len(ids))
	for i, id := range ids {
		coord, err := e.coordinateFor(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i] = coord
	}

	return out, nil
}

func (e *SPARQLExtractor) coordinateFor(ctx context.Context, id domain.EntityID) (*domain.Coordinates, error) {
	// The id is interpolated into the query text, so only well-formed ids
	// are ever sent.
	if !id.Valid() {
		return e.malformed(id, fmt.Errorf("ill-formed identifier %q", id))
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf(coordinateQueryPattern, id))
	params.Set("format", "json")

	resp, err := e.client.get(ctx, "sparql", e.client.sparqlURL, params, "application/sparql-results+json")
	if err != nil {
		return nil, fmt.Errorf("%w: sparql coordinates for %s: %w", domain.ErrExtractionFailed, id, err)
	}
	defer resp.Body.Close()

	var decoded sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return e.malformed(id, fmt.Errorf("decode sparql response: %w", err))
	}

	rows := decoded.Results.Bindings
	if len(rows) == 0 {
		return e.malformed(id, errors.New("no rows"))
	}

	lat, err := strconv.ParseFloat(rows[0]["latitude"].Value, 64)
	if err != nil {
		return e.malformed(id, fmt.Errorf("parse latitude: %w", err))
	}
	lon, err := strconv.ParseFloat(rows[0]["longitude"].Value, 64)
	if err != nil {
		return e.malformed(id, fmt.Errorf("parse longitude: %w", err))
	}

	return &domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func (e *SPARQLExtractor) malformed(id domain.EntityID, cause error) (*domain.Coordinates, error) {
	if e.mode == ModeStrict {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMalformedRow, id, cause)
	}

	e.client.log.Debug("no usable sparql coordinate",
		zap.String("id", string(id)),
		zap.Error(cause),
	)
	return nil, nil
}
