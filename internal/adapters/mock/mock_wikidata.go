package mock

import (
	"context"
	"fromtodk/internal/domain"
	"sync"
)

// Place is a canned knowledge-base answer: the candidates a text resolves to,
// and optionally the coordinate of its first candidate.
type Place struct {
	Text  string
	IDs   []domain.EntityID
	Coord *domain.Coordinates
}

// Wikidata is an in-memory EntityResolver and CoordinateExtractor.
type Wikidata struct {
	mu sync.Mutex

	candidates map[string][]domain.EntityID
	coords     map[domain.EntityID]*domain.Coordinates

	ResolveErr error
	ExtractErr error

	resolveCalls int
	extractCalls [][]domain.EntityID
}

func NewWikidata(places []Place) *Wikidata {
	w := &Wikidata{
		candidates: make(map[string][]domain.EntityID, len(places)),
		coords:     make(map[domain.EntityID]*domain.Coordinates, len(places)),
	}
	for _, p := range places {
		w.candidates[p.Text] = p.IDs
		if p.Coord != nil && len(p.IDs) > 0 {
			w.coords[p.IDs[0]] = p.Coord
		}
	}
	return w
}

func (w *Wikidata) Resolve(ctx context.Context, text string, language string) ([]domain.EntityID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resolveCalls++
	if w.ResolveErr != nil {
		return nil, w.ResolveErr
	}

	ids, ok := w.candidates[text]
	if !ok {
		return []domain.EntityID{}, nil
	}
	return append([]domain.EntityID(nil), ids...), nil
}

func (w *Wikidata) CoordinatesFor(ctx context.Context, ids []domain.EntityID) ([]*domain.Coordinates, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.extractCalls = append(w.extractCalls, append([]domain.EntityID(nil), ids...))
	if w.ExtractErr != nil {
		return nil, w.ExtractErr
	}

	out := make([]*domain.Coordinates, len(ids))
	for i, id := range ids {
		if c, ok := w.coords[id]; ok {
			cp := *c
			out[i] = &cp
		}
	}
	return out, nil
}

// ResolveCalls reports how many times Resolve was called.
func (w *Wikidata) ResolveCalls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resolveCalls
}

// ExtractCalls returns the id lists passed to CoordinatesFor, one per call.
func (w *Wikidata) ExtractCalls() [][]domain.EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]domain.EntityID(nil), w.extractCalls...)
}
