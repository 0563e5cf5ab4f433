// internal/server/schemas.go
package server

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas, validated before any handler logic runs.
var (
	chatRequestSchema = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["message"],
		"properties": {
			"message": {"type": "string", "minLength": 1, "maxLength": 2000}
		},
		"additionalProperties": false
	}`)

	nearbyRequestSchema = gojsonschema.NewStringLoader(`{
		"type": "object",
		"properties": {
			"lat": {"type": "number", "minimum": -90, "maximum": 90},
			"lng": {"type": "number", "minimum": -180, "maximum": 180},
			"max_distance_km": {"type": "number", "exclusiveMinimum": 0},
			"max_time_minutes": {"type": "number", "exclusiveMinimum": 0}
		},
		"dependencies": {
			"lat": ["lng"],
			"lng": ["lat"]
		},
		"additionalProperties": false
	}`)
)

func validateSchema(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %v", errs)
	}
	return nil
}
