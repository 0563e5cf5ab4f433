package geofilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate-api/internal/models"
)

var (
	newDelhi = models.Coordinate{Lat: 28.6139, Lng: 77.2090}
	mumbai   = models.Coordinate{Lat: 19.076090, Lng: 72.877426}
)

func defaultConfig() *Config {
	return &Config{MaxDistanceKm: 200, MaxTimeMinutes: 300, AssumedSpeedKmh: 40}
}

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      models.Coordinate
		expected  float64
		tolerance float64
	}{
		{
			name:      "identical points",
			a:         newDelhi,
			b:         newDelhi,
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "delhi to mumbai",
			a:         newDelhi,
			b:         mumbai,
			expected:  1150,
			tolerance: 20,
		},
		{
			name:      "one degree of latitude",
			a:         models.Coordinate{Lat: 0, Lng: 0},
			b:         models.Coordinate{Lat: 1, Lng: 0},
			expected:  111.2,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, HaversineKm(tt.a, tt.b), tt.tolerance)
		})
	}
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	assert.InDelta(t, HaversineKm(newDelhi, mumbai), HaversineKm(mumbai, newDelhi), 1e-9)
}

func TestTravelTimeMinutes(t *testing.T) {
	config := defaultConfig()
	assert.InDelta(t, 300, config.TravelTimeMinutes(200), 1e-9)
	assert.InDelta(t, 60, config.TravelTimeMinutes(40), 1e-9)
	assert.InDelta(t, 0, config.TravelTimeMinutes(0), 1e-9)
}

func TestNearbyFromDelhi(t *testing.T) {
	// From central Delhi only the Delhi store is within 200 km; the other
	// four metros are all over a thousand kilometers out.
	result := defaultConfig().Nearby(newDelhi, Directory)

	require.Len(t, result, 1)
	store := result[0]
	assert.Equal(t, "Walmart Delhi", store.Name)
	assert.Less(t, store.DistanceKm, 1.0)
	assert.Less(t, store.TravelTimeMin, 2.0)
	assert.Contains(t, store.DirectionsURL, "openstreetmap.org/directions")
	assert.Contains(t, store.DirectionsURL, "engine=graphhopper_car")
}

func TestNearbyExcludesDistantStores(t *testing.T) {
	result := defaultConfig().Nearby(newDelhi, Directory)
	for _, store := range result {
		assert.NotEqual(t, "Walmart Kolkata", store.Name, "Kolkata is ~1300 km from Delhi")
	}
}

func TestNearbyPreservesDirectoryOrder(t *testing.T) {
	// An origin between Mumbai and Hyderabad with a wide radius keeps
	// several stores; they must come back in directory order.
	origin := models.Coordinate{Lat: 18.5, Lng: 75.5}
	config := &Config{MaxDistanceKm: 600, MaxTimeMinutes: 900, AssumedSpeedKmh: 40}

	result := config.Nearby(origin, Directory)
	require.GreaterOrEqual(t, len(result), 2)

	positions := map[string]int{}
	for i, store := range Directory {
		positions[store.Name] = i
	}
	for i := 1; i < len(result); i++ {
		assert.Less(t, positions[result[i-1].Name], positions[result[i].Name])
	}
}

func TestNearbyEmptyWhenNothingReachable(t *testing.T) {
	// Middle of the Atlantic.
	origin := models.Coordinate{Lat: 0, Lng: -30}

	result := defaultConfig().Nearby(origin, Directory)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestNearbyTimeBoundCanBeTightened(t *testing.T) {
	// A time bound tighter than the one implied by the distance bound
	// excludes stores the distance check alone would keep.
	config := &Config{MaxDistanceKm: 200, MaxTimeMinutes: 30, AssumedSpeedKmh: 40}
	origin := models.Coordinate{Lat: 28.9, Lng: 77.6} // ~50 km from the Delhi store

	result := config.Nearby(origin, Directory)
	assert.Empty(t, result, "50 km at 40 km/h is 75 min, over the 30 min bound")
}

func TestTrackerLastRequestWins(t *testing.T) {
	tracker := NewTracker()

	first := tracker.Begin()
	second := tracker.Begin()

	assert.False(t, tracker.Latest(first), "a superseded request must not publish")
	assert.True(t, tracker.Latest(second))

	third := tracker.Begin()
	assert.False(t, tracker.Latest(second))
	assert.True(t, tracker.Latest(third))
}
