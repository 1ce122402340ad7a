package dto

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DistanceResponse struct {
	From       string              `json:"from"`
	To         string              `json:"to"`
	FromIDs    []string            `json:"from_ids"`
	ToIDs      []string            `json:"to_ids"`
	FromID     string              `json:"from_id,omitempty"`
	ToID       string              `json:"to_id,omitempty"`
	FromCoord  *CoordinateResponse `json:"from_coordinate"`
	ToCoord    *CoordinateResponse `json:"to_coordinate"`
	DistanceKm *float64            `json:"distance_km"`
	Found      bool                `json:"found"`
}
