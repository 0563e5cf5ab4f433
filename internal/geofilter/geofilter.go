// internal/geofilter/geofilter.go
package geofilter

import (
	"math"

	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/models"
)

const (
	earthRadiusKm = 6371
)

// Config carries the reachability thresholds and the travel speed used to
// convert distance into an estimated drive time.
type Config struct {
	MaxDistanceKm   float64
	MaxTimeMinutes  float64
	AssumedSpeedKmh float64
}

// Thresholds returns the limits this config filters with.
func (c *Config) Thresholds() models.FilterThresholds {
	return models.FilterThresholds{
		MaxDistanceKm:  c.MaxDistanceKm,
		MaxTimeMinutes: c.MaxTimeMinutes,
	}
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(a, b models.Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// TravelTimeMinutes estimates drive time for a distance at the assumed
// constant speed. At the default 40 km/h the time bound of 300 minutes is
// implied by the 200 km distance bound, so the distance check decides alone;
// both are still evaluated so the thresholds can be tuned independently.
func (c *Config) TravelTimeMinutes(distanceKm float64) float64 {
	return distanceKm / c.AssumedSpeedKmh * 60
}

// Nearby returns the stores reachable from origin, annotated with distance,
// estimated travel time and a directions link. Input order is preserved; a
// store is kept only when it passes both the distance and the time bound.
func (c *Config) Nearby(origin models.Coordinate, stores []models.RetailStore) []models.NearbyStore {
	result := make([]models.NearbyStore, 0, len(stores))
	for _, store := range stores {
		distance := HaversineKm(origin, store.Coordinate)
		travelTime := c.TravelTimeMinutes(distance)
		if distance > c.MaxDistanceKm || travelTime > c.MaxTimeMinutes {
			continue
		}
		result = append(result, models.NearbyStore{
			Name:          store.Name,
			Coordinate:    store.Coordinate,
			DistanceKm:    distance,
			TravelTimeMin: travelTime,
			DirectionsURL: DirectionsURL(origin, store.Coordinate),
		})
	}
	metrics.GeofilterStoresReturned.Observe(float64(len(result)))
	return result
}
