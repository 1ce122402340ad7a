package domain

import "errors"

// Transport-level failures. Absences (no candidates, no coordinate, no distance)
// are not errors and are represented by empty slices, nil coordinates and
// DistanceResult.Found == false.
var (
	ErrResolutionFailed = errors.New("entity resolution failed")
	ErrExtractionFailed = errors.New("coordinate extraction failed")

	// Returned only by the strict SPARQL mode when a result row has no usable
	// latitude/longitude pair.
	ErrMalformedRow = errors.New("malformed coordinate row")
)
