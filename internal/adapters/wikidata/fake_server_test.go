package wikidata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeWikidata serves canned wbsearchentities, wbgetentities and SPARQL
// responses and records what it was asked.
type fakeWikidata struct {
	t *testing.T

	mu       sync.Mutex
	requests []*http.Request

	search   map[string][]string
	entities map[string]string
	sparql   map[string]string

	// failures makes the next N requests answer with failStatus.
	failures   int
	failStatus int
	rawBody    string
}

func newFakeWikidata(t *testing.T) *fakeWikidata {
	return &fakeWikidata{
		t:        t,
		search:   map[string][]string{},
		entities: map[string]string{},
		sparql:   map[string]string{},
	}
}

func (f *fakeWikidata) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(r.Context()))
	if f.failures > 0 {
		f.failures--
		status := f.failStatus
		f.mu.Unlock()
		http.Error(w, "upstream unavailable", status)
		return
	}
	raw := f.rawBody
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if raw != "" {
		_, _ = w.Write([]byte(raw))
		return
	}

	q := r.URL.Query()
	switch {
	case r.URL.Path == "/sparql":
		f.serveSPARQL(w, q.Get("query"))
	case q.Get("action") == "wbsearchentities":
		f.serveSearch(w, q.Get("search"))
	case q.Get("action") == "wbgetentities":
		f.serveEntities(w, strings.Split(q.Get("ids"), "|"))
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func (f *fakeWikidata) serveSearch(w http.ResponseWriter, text string) {
	ids, ok := f.search[text]
	if !ok {
		_, _ = w.Write([]byte(`{"searchinfo":{"search":"` + text + `"},"success":1}`))
		return
	}

	items := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]string{"id": id, "label": text})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"search": items, "success": 1})
}

func (f *fakeWikidata) serveEntities(w http.ResponseWriter, ids []string) {
	// Emit entities in reverse request order so callers cannot rely on it.
	parts := make([]string, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		body, ok := f.entities[id]
		if !ok {
			body = `{"id":"` + id + `","missing":""}`
		}
		parts = append(parts, `"`+id+`":`+body)
	}
	_, _ = w.Write([]byte(`{"entities":{` + strings.Join(parts, ",") + `},"success":1}`))
}

func (f *fakeWikidata) serveSPARQL(w http.ResponseWriter, query string) {
	for id, body := range f.sparql {
		if strings.Contains(query, "wd:"+id+" ") {
			_, _ = w.Write([]byte(body))
			return
		}
	}
	_, _ = w.Write([]byte(sparqlRows()))
}

func (f *fakeWikidata) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func (f *fakeWikidata) start() (*httptest.Server, *Client) {
	srv := httptest.NewServer(f)
	f.t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		APIURL:         srv.URL + "/w/api.php",
		SPARQLURL:      srv.URL + "/sparql",
		UserAgent:      "fromtodk-test",
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		Logger:         zaptest.NewLogger(f.t),
	})
	require.NoError(f.t, err)

	return srv, client
}

func coordinateClaim(lat, lon string) string {
	return `{"mainsnak":{"snaktype":"value","property":"P625","datavalue":{"value":{` +
		`"latitude":` + lat + `,"longitude":` + lon + `,"altitude":null,"precision":0.0001,` +
		`"globe":"http://www.wikidata.org/entity/Q2"},"type":"globecoordinate"}},"rank":"normal"}`
}

func entityWithCoordinate(id, lat, lon string) string {
	return `{"type":"item","id":"` + id + `","claims":{"P625":[` + coordinateClaim(lat, lon) + `]}}`
}

func headquartersClaim(lat, lon string) string {
	return `{"mainsnak":{"snaktype":"value","property":"P159","datavalue":{"value":{` +
		`"entity-type":"item","id":"Q1748"},"type":"wikibase-entityid"}},` +
		`"qualifiers":{"P625":[{"snaktype":"value","property":"P625","datavalue":{"value":{` +
		`"latitude":` + lat + `,"longitude":` + lon + `,"precision":0.0001,` +
		`"globe":"http://www.wikidata.org/entity/Q2"},"type":"globecoordinate"}}]},"rank":"normal"}`
}

func entityWithHeadquarters(id, lat, lon string) string {
	return `{"type":"item","id":"` + id + `","claims":{"P159":[` + headquartersClaim(lat, lon) + `]}}`
}

func sparqlRows(rows ...[2]string) string {
	bindings := make([]string, 0, len(rows))
	for _, r := range rows {
		bindings = append(bindings,
			`{"latitude":{"datatype":"http://www.w3.org/2001/XMLSchema#double","type":"literal","value":"`+r[0]+`"},`+
				`"longitude":{"datatype":"http://www.w3.org/2001/XMLSchema#double","type":"literal","value":"`+r[1]+`"}}`)
	}
	return `{"head":{"vars":["latitude","longitude"]},"results":{"bindings":[` + strings.Join(bindings, ",") + `]}}`
}
