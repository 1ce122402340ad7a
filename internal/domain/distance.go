package domain

import "strconv"

// Outcome of a from/to distance lookup.
// Found is false when either side had no search candidate or no coordinate;
// in that case Km is zero and must not be read as a distance.
type DistanceResult struct {
	From    string
	To      string
	FromIDs []EntityID
	ToIDs   []EntityID

	FromID    EntityID
	ToID      EntityID
	FromCoord *Coordinates
	ToCoord   *Coordinates

	Km    float64
	Found bool
}

// KmString formats Km with the shortest exact representation, or returns ""
// when no distance was found.
func (r *DistanceResult) KmString() string {
	if r == nil || !r.Found {
		return ""
	}
	return strconv.FormatFloat(r.Km, 'f', -1, 64)
}
