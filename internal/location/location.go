// internal/location/location.go
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "shopmate-api/internal/common/errors"
	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/models"
)

// FallbackCoordinate is central New Delhi, used whenever the user's real
// position cannot be determined.
var FallbackCoordinate = models.Coordinate{Lat: 28.6139, Lng: 77.2090}

var ErrUnavailable = errors.New("LOCATION_UNAVAILABLE")

// Provider yields the user's current position.
type Provider interface {
	Current(ctx context.Context) (models.Coordinate, error)
}

// HTTPProvider queries a geolocation endpoint that answers with a JSON
// body carrying lat/lng fields.
type HTTPProvider struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{url: url, timeout: timeout, client: &http.Client{}}
}

func (p *HTTPProvider) Current(ctx context.Context) (models.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", p.url, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinate{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: decode error: %v", ErrUnavailable, err)
	}
	return models.Coordinate{Lat: body.Lat, Lng: body.Lng}, nil
}

// Resolver wraps a Provider with the fallback policy: Resolve never fails,
// it degrades to the New Delhi coordinate instead.
type Resolver struct {
	provider Provider
	logger   logger.Logger
}

func NewResolver(provider Provider, log logger.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   log.WithFields(map[string]interface{}{"component": "location-resolver"}),
	}
}

// Resolve returns the user's position and whether the fallback was used.
// A nil provider means no location source is configured at all.
func (r *Resolver) Resolve(ctx context.Context) (models.Coordinate, bool) {
	if r.provider == nil {
		metrics.LocationFallbacks.Inc()
		return FallbackCoordinate, true
	}

	coord, err := r.provider.Current(ctx)
	if err != nil {
		metrics.LocationFallbacks.Inc()
		stdErr := apperrors.NewLocationUnavailableError(err)
		r.logger.Warn("location lookup failed, using fallback", map[string]interface{}{
			"code":     string(stdErr.Code),
			"category": apperrors.GetErrorCategory(stdErr.Code),
			"details":  stdErr.Details,
		})
		return FallbackCoordinate, true
	}
	return coord, false
}
