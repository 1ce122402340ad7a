package wikidata

import (
	"fmt"
	"fromtodk/internal/config"
	"fromtodk/internal/ports"
)

// NewExtractor returns the coordinate strategy named by strategy. A single
// extractor never mixes strategies within one call.
func NewExtractor(strategy string, client *Client, strict bool) (ports.CoordinateExtractor, error) {
	switch strategy {
	case config.StrategyClaims, "":
		return NewClaimsExtractor(client), nil
	case config.StrategySPARQL:
		mode := ModeLenient
		if strict {
			mode = ModeStrict
		}
		return NewSPARQLExtractor(client, mode)
	default:
		return nil, fmt.Errorf("unknown coordinate strategy %q", strategy)
	}
}
