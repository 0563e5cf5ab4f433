// internal/geofilter/stores.go
package geofilter

import (
	"fmt"

	"shopmate-api/internal/models"
)

// Directory is the fixed set of store locations the nearby lookup filters.
var Directory = []models.RetailStore{
	{Name: "Walmart Hyderabad", Coordinate: models.Coordinate{Lat: 17.385044, Lng: 78.486671}},
	{Name: "Walmart Bangalore", Coordinate: models.Coordinate{Lat: 12.971599, Lng: 77.594566}},
	{Name: "Walmart Delhi", Coordinate: models.Coordinate{Lat: 28.613939, Lng: 77.209023}},
	{Name: "Walmart Mumbai", Coordinate: models.Coordinate{Lat: 19.076090, Lng: 72.877426}},
	{Name: "Walmart Kolkata", Coordinate: models.Coordinate{Lat: 22.572645, Lng: 88.363892}},
}

// DirectionsURL builds an OpenStreetMap driving-directions link from origin
// to destination.
func DirectionsURL(origin, destination models.Coordinate) string {
	return fmt.Sprintf(
		"https://www.openstreetmap.org/directions?engine=graphhopper_car&route=%v,%v;%v,%v",
		origin.Lat, origin.Lng, destination.Lat, destination.Lng,
	)
}
