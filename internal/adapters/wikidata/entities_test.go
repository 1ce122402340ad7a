package wikidata

import (
	"context"
	"fmt"
	"fromtodk/internal/domain"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsExtractorEmptyInput(t *testing.T) {
	fake := newFakeWikidata(t)
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{})
	require.NoError(t, err)
	assert.Empty(t, coords)
	assert.Empty(t, fake.Requests())
}

func TestClaimsExtractorSingleBatchedRequest(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q1748"] = entityWithCoordinate("Q1748", "55.770555555556", "12.503611111111")
	fake.entities["Q2239"] = entityWithCoordinate("Q2239", "56.156388888889", "10.213888888889")
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(
		context.Background(),
		[]domain.EntityID{"Q1748", "Q2239"},
	)
	require.NoError(t, err)
	require.Len(t, coords, 2)

	// The fake answers in reverse order; output must follow input order.
	require.NotNil(t, coords[0])
	assert.InDelta(t, 55.7706, coords[0].Lat, 1e-3)
	assert.InDelta(t, 12.5036, coords[0].Lon, 1e-3)
	require.NotNil(t, coords[1])
	assert.InDelta(t, 56.1564, coords[1].Lat, 1e-3)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	q := reqs[0].URL.Query()
	assert.Equal(t, "wbgetentities", q.Get("action"))
	assert.Equal(t, "Q1748|Q2239", q.Get("ids"))
	assert.Equal(t, "en", q.Get("languages"))
	assert.Equal(t, "claims", q.Get("props"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "fromtodk-test", reqs[0].Header.Get("User-Agent"))
}

func TestClaimsExtractorHeadquartersQualifierFallback(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q818846"] = entityWithHeadquarters("Q818846", "55.7858", "12.5215")
	fake.entities["Q12325240"] = `{"type":"item","id":"Q12325240","claims":{}}`
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(
		context.Background(),
		[]domain.EntityID{"Q818846", "Q12325240"},
	)
	require.NoError(t, err)
	require.Len(t, coords, 2)
	require.NotNil(t, coords[0])
	assert.Equal(t, 56.0, math.Round(coords[0].Lat))
	assert.Nil(t, coords[1])
}

func TestClaimsExtractorPrefersDirectCoordinate(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q1"] = `{"id":"Q1","claims":{` +
		`"P625":[` + coordinateClaim("10", "20") + `],` +
		`"P159":[` + headquartersClaim("30", "40") + `]}}`
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q1"})
	require.NoError(t, err)
	require.NotNil(t, coords[0])
	assert.Equal(t, domain.Coordinates{Lat: 10, Lon: 20}, *coords[0])
}

func TestClaimsExtractorNoValueCoordinateFallsBackToHeadquarters(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q5"] = `{"id":"Q5","claims":{` +
		`"P625":[{"mainsnak":{"snaktype":"novalue","property":"P625"}}],` +
		`"P159":[` + headquartersClaim("30", "40") + `]}}`
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q5"})
	require.NoError(t, err)
	require.NotNil(t, coords[0])
	assert.Equal(t, domain.Coordinates{Lat: 30, Lon: 40}, *coords[0])
}

func TestClaimsExtractorDegradesPerEntity(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q1"] = entityWithCoordinate("Q1", "1", "2")
	fake.entities["Q2"] = `{"id":"Q2","claims":"not an object"}`
	fake.entities["Q3"] = `{"id":"Q3","claims":{"P625":[{"mainsnak":{"datavalue":{"value":"text"}}}]}}`
	fake.entities["Q4"] = `{"id":"Q4","claims":{"P625":[{"mainsnak":{"datavalue":{"value":{` +
		`"latitude":18.65,"longitude":226.2,"globe":"http://www.wikidata.org/entity/Q111"}}}}]}}`
	fake.entities["Q6"] = entityWithCoordinate("Q6", "7", "8")
	_, client := fake.start()

	ids := []domain.EntityID{"Q1", "Q2", "Q3", "Q4", "Q404", "Q6"}
	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, coords, len(ids))

	assert.Equal(t, domain.Coordinates{Lat: 1, Lon: 2}, *coords[0])
	assert.Nil(t, coords[1], "malformed claims")
	assert.Nil(t, coords[2], "non-coordinate value")
	assert.Nil(t, coords[3], "coordinate on Mars")
	assert.Nil(t, coords[4], "missing entity")
	assert.Equal(t, domain.Coordinates{Lat: 7, Lon: 8}, *coords[5])
}

func TestClaimsExtractorSkipsIllFormedIDs(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.entities["Q1"] = entityWithCoordinate("Q1", "1", "2")
	_, client := fake.start()

	ids := []domain.EntityID{"q1", "Q1", "1748", "Q1"}
	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, coords, 4)
	assert.Nil(t, coords[0])
	assert.NotNil(t, coords[1])
	assert.Nil(t, coords[2])
	assert.NotNil(t, coords[3])

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Q1", reqs[0].URL.Query().Get("ids"))
}

func TestClaimsExtractorOnlyIllFormedIDsSendsNothing(t *testing.T) {
	fake := newFakeWikidata(t)
	_, client := fake.start()

	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q", ""})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Coordinates{nil, nil}, coords)
	assert.Empty(t, fake.Requests())
}

func TestClaimsExtractorSplitsLargeBatches(t *testing.T) {
	fake := newFakeWikidata(t)
	_, client := fake.start()

	ids := make([]domain.EntityID, 0, 120)
	for i := 1; i <= 120; i++ {
		ids = append(ids, domain.EntityID(fmt.Sprintf("Q%d", i)))
	}

	coords, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, coords, 120)
	assert.Len(t, fake.Requests(), 3)
}

func TestClaimsExtractorTransportFailure(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.failures = 10
	fake.failStatus = http.StatusInternalServerError
	_, client := fake.start()

	_, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.NotErrorIs(t, err, domain.ErrResolutionFailed)
}

func TestClaimsExtractorAPIErrorEnvelope(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.rawBody = `{"error":{"code":"no-such-entity","info":"Could not find an entity with the ID \"Q0\"."}}`
	_, client := fake.start()

	_, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q0"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "no-such-entity")
}

func TestClaimsExtractorUndecodableEnvelope(t *testing.T) {
	fake := newFakeWikidata(t)
	fake.rawBody = `{"entities":`
	_, client := fake.start()

	_, err := NewClaimsExtractor(client).CoordinatesFor(context.Background(), []domain.EntityID{"Q1"})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}
