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

type searchResponse struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Resolver implements ports.EntityResolver with the wbsearchentities action.
// Candidates come back in the endpoint's relevance order; callers that take
// the first one accept that ambiguous names may resolve to the wrong item.
type Resolver struct {
	client          *Client
	defaultLanguage string
}

func NewResolver(client *Client, defaultLanguage string) *Resolver {
	if defaultLanguage == "" {
		defaultLanguage = "da"
	}
	return &Resolver{client: client, defaultLanguage: defaultLanguage}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	text string,
	language string,
) (_ []domain.EntityID, err error) {
	defer obs.Time(ctx, r.client.log, "wikidata.Resolve")(&err)

	text = strings.TrimSpace(text)
	if text == "" {
		return []domain.EntityID{}, nil
	}
	if language == "" {
		language = r.defaultLanguage
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("language", language)
	params.Set("format", "json")
	params.Set("search", text)

	resp, err := r.client.get(ctx, "wbsearchentities", r.client.apiURL, params, "application/json")
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", domain.ErrResolutionFailed, text, err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode search response for %q: %w", domain.ErrResolutionFailed, text, err)
	}

	if decoded.Error != nil {
		r.client.log.Warn("wikidata search returned an api error",
			zap.String("search", text),
			zap.String("code", decoded.Error.Code),
			zap.String("info", decoded.Error.Info),
		)
	}

	ids := make([]domain.EntityID, 0, len(decoded.Search))
	for _, item := range decoded.Search {
		ids = append(ids, domain.EntityID(item.ID))
	}

	return ids, nil
}
