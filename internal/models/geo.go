// internal/models/geo.go
package models

// Coordinate is a WGS84 point. Latitude in [-90,90], longitude in [-180,180].
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RetailStore is one entry of the static store directory.
type RetailStore struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}

// FilterThresholds are the user-adjustable store filter limits.
// Both must be positive.
type FilterThresholds struct {
	MaxDistanceKm  float64 `json:"maxDistanceKm"`
	MaxTimeMinutes float64 `json:"maxTimeMinutes"`
}

// NearbyStore is a store that passed the filter, annotated for the map view.
type NearbyStore struct {
	Name          string     `json:"name"`
	Coordinate    Coordinate `json:"coordinate"`
	DistanceKm    float64    `json:"distanceKm"`
	TravelTimeMin float64    `json:"travelTimeMin"`
	DirectionsURL string     `json:"directionsUrl"`
}
