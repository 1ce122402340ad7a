// Package app assembles the distance lookup from configuration. It is shared
// by the CLI and the HTTP server.
package app

import (
	"fmt"
	"fromtodk/internal/adapters/wikidata"
	"fromtodk/internal/config"
	"fromtodk/internal/services"

	"go.uber.org/zap"
)

func NewDistanceService(cfg *config.Config, log *zap.Logger) (*services.Lookup, error) {
	client, err := wikidata.NewClientFromConfig(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("new distance service: %w", err)
	}

	extractor, err := wikidata.NewExtractor(cfg.Strategy, client, cfg.SPARQLStrict)
	if err != nil {
		return nil, fmt.Errorf("new distance service: %w", err)
	}

	resolver := wikidata.NewResolver(client, cfg.Language)

	return services.NewLookup(resolver, extractor, cfg.Language, log), nil
}
