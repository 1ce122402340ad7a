package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"fromtodk/internal/domain"
	"fromtodk/internal/platform/obs"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	propCoordinate   = "P625"
	propHeadquarters = "P159"

	// wbgetentities rejects more ids than this for non-bot clients.
	maxIDsPerRequest = 50

	earthGlobe = "http://www.wikidata.org/entity/Q2"
)

type entitiesResponse struct {
	Entities map[string]json.RawMessage `json:"entities"`
	Error    *apiError                  `json:"error"`
}

type entityRecord struct {
	Claims map[string][]statement `json:"claims"`
}

type statement struct {
	Mainsnak   snak              `json:"mainsnak"`
	Qualifiers map[string][]snak `json:"qualifiers"`
}

type snak struct {
	Datavalue *struct {
		Value json.RawMessage `json:"value"`
	} `json:"datavalue"`
}

type globeCoordinate struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Globe     string   `json:"globe"`
}

// ClaimsExtractor implements ports.CoordinateExtractor with one batched
// wbgetentities request (props=claims) for all identifiers of a call.
type ClaimsExtractor struct {
	client *Client
}

func NewClaimsExtractor(client *Client) *ClaimsExtractor {
	return &ClaimsExtractor{client: client}
}

func (e *ClaimsExtractor) CoordinatesFor(
	ctx context.Context,
	ids []domain.EntityID,
) (_ []*domain.Coordinates, err error) {
	defer obs.Time(ctx, e.client.log, "wikidata.CoordinatesFor.claims")(&err)

	out := make([]*domain.Coordinates, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	// Ill-formed ids would make the endpoint reject the whole batch, so they
	// are never sent and stay absent.
	seen := make(map[domain.EntityID]struct{}, len(ids))
	uniq := make([]domain.EntityID, 0, len(ids))
	for _, id := range ids {
		if !id.Valid() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	records := make(map[string]json.RawMessage, len(uniq))
	for start := 0; start < len(uniq); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(uniq))

		batch, err := e.fetchEntities(ctx, uniq[start:end])
		if err != nil {
			return nil, err
		}
		for k, v := range batch {
			records[k] = v
		}
	}

	for i, id := range ids {
		raw, ok := records[string(id)]
		if !ok {
			continue
		}

		coord, err := coordinateFromRecord(raw)
		if err != nil {
			e.client.log.Debug("unusable entity record",
				zap.String("id", string(id)),
				zap.Error(err),
			)
			continue
		}
		out[i] = coord
	}

	return out, nil
}

func (e *ClaimsExtractor) fetchEntities(
	ctx context.Context,
	ids []domain.EntityID,
) (map[string]json.RawMessage, error) {
	joined := make([]string, 0, len(ids))
	for _, id := range ids {
		joined = append(joined, string(id))
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", strings.Join(joined, "|"))
	params.Set("languages", "en")
	params.Set("props", "claims")
	params.Set("format", "json")

	resp, err := e.client.get(ctx, "wbgetentities", e.client.apiURL, params, "application/json")
	if err != nil {
		return nil, fmt.Errorf("%w: get entities %v: %w", domain.ErrExtractionFailed, joined, err)
	}
	defer resp.Body.Close()

	var decoded entitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode entities response: %w", domain.ErrExtractionFailed, err)
	}

	if decoded.Error != nil {
		return nil, fmt.Errorf(
			"%w: api error %s: %s",
			domain.ErrExtractionFailed, decoded.Error.Code, decoded.Error.Info,
		)
	}

	return decoded.Entities, nil
}

// coordinateFromRecord applies the lookup precedence for one entity:
// the first P625 statement, else the P625 qualifier on the first P159
// (headquarters) statement. It returns nil, nil when neither is present.
func coordinateFromRecord(raw json.RawMessage) (*domain.Coordinates, error) {
	var rec entityRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode entity: %w", err)
	}

	if stmts := rec.Claims[propCoordinate]; len(stmts) > 0 {
		if coord, err := coordinateFromSnak(stmts[0].Mainsnak); err == nil && coord != nil {
			return coord, nil
		}
	}

	if stmts := rec.Claims[propHeadquarters]; len(stmts) > 0 {
		if quals := stmts[0].Qualifiers[propCoordinate]; len(quals) > 0 {
			return coordinateFromSnak(quals[0])
		}
	}

	return nil, nil
}

func coordinateFromSnak(s snak) (*domain.Coordinates, error) {
	// "novalue" and "somevalue" snaks carry no datavalue.
	if s.Datavalue == nil {
		return nil, nil
	}

	var v globeCoordinate
	if err := json.Unmarshal(s.Datavalue.Value, &v); err != nil {
		return nil, fmt.Errorf("decode globe coordinate: %w", err)
	}
	if v.Latitude == nil || v.Longitude == nil {
		return nil, fmt.Errorf("globe coordinate without latitude/longitude")
	}
	if v.Globe != "" && v.Globe != earthGlobe {
		return nil, fmt.Errorf("coordinate on non-Earth globe %q", v.Globe)
	}

	return &domain.Coordinates{Lat: *v.Latitude, Lon: *v.Longitude}, nil
}
