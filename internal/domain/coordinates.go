package domain

import "fmt"

// Immutable geographic coordinates in WGS84 decimal degrees.
// A nil *Coordinates means "no coordinate exists for this entity".
type Coordinates struct {
	Lat float64
	Lon float64
}

func (c Coordinates) String() string { return fmt.Sprintf("(%g, %g)", c.Lat, c.Lon) }
