package services

import (
	"context"
	"fmt"
	"fromtodk/internal/domain"
	"fromtodk/internal/metrics"
	"fromtodk/internal/platform/obs"
	"fromtodk/internal/ports"
	"strings"

	"go.uber.org/zap"
)

// Lookup answers "how far is <from> from <to>" by resolving both texts to
// their top-ranked entity and measuring between the entities' coordinates.
//
// Only the first search candidate of each side is used. A more relevant
// candidate further down the list is never considered.
type Lookup struct {
	resolver  ports.EntityResolver
	extractor ports.CoordinateExtractor
	language  string
	log       *zap.Logger
}

func NewLookup(
	resolver ports.EntityResolver,
	extractor ports.CoordinateExtractor,
	language string,
	log *zap.Logger,
) *Lookup {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lookup{
		resolver:  resolver,
		extractor: extractor,
		language:  language,
		log:       log,
	}
}

// LookupDistance returns a result with Found == false when either text has no
// candidate or either candidate has no coordinate. Errors are transport
// failures and still match domain.ErrResolutionFailed or
// domain.ErrExtractionFailed.
func (l *Lookup) LookupDistance(ctx context.Context, from, to string) (res *domain.DistanceResult, err error) {
	defer obs.Time(ctx, l.log, "services.LookupDistance")(&err)
	defer func() {
		metrics.DistanceLookups.WithLabelValues(lookupOutcome(err, res)).Inc()
	}()

	res = &domain.DistanceResult{
		From: strings.TrimSpace(from),
		To:   strings.TrimSpace(to),
	}

	res.FromIDs, err = l.resolver.Resolve(ctx, res.From, l.language)
	if err != nil {
		return nil, fmt.Errorf("lookup distance: resolve from %q: %w", res.From, err)
	}
	res.ToIDs, err = l.resolver.Resolve(ctx, res.To, l.language)
	if err != nil {
		return nil, fmt.Errorf("lookup distance: resolve to %q: %w", res.To, err)
	}

	res.FromID = domain.First(res.FromIDs)
	res.ToID = domain.First(res.ToIDs)
	if res.FromID == "" || res.ToID == "" {
		l.log.Debug("no candidate",
			zap.String("from", res.From),
			zap.String("to", res.To),
			zap.Int("from_candidates", len(res.FromIDs)),
			zap.Int("to_candidates", len(res.ToIDs)),
		)
		return res, nil
	}

	coords, err := l.extractor.CoordinatesFor(ctx, []domain.EntityID{res.FromID, res.ToID})
	if err != nil {
		return nil, fmt.Errorf("lookup distance: coordinates for %s, %s: %w", res.FromID, res.ToID, err)
	}
	if len(coords) != 2 {
		return nil, fmt.Errorf(
			"%w: lookup distance: got %d coordinates for 2 ids",
			domain.ErrExtractionFailed, len(coords),
		)
	}

	res.FromCoord, res.ToCoord = coords[0], coords[1]
	res.Km, res.Found = DistanceKm(res.FromCoord, res.ToCoord)

	return res, nil
}

func lookupOutcome(err error, res *domain.DistanceResult) string {
	switch {
	case err != nil:
		return metrics.ResultError
	case res != nil && res.Found:
		return metrics.ResultFound
	default:
		return metrics.ResultAbsent
	}
}
