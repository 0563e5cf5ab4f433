// Package products provides read-only access to the products relation.
// The assistant issues exactly one of these query shapes per utterance.
package products

import (
	"context"

	"shopmate-api/internal/common/errors"
	"shopmate-api/internal/models"
)

// Store is the read-only query surface over the product catalog.
type Store interface {
	// NamesByCategory returns the names of products whose category contains
	// the given fragment, case-insensitively.
	NamesByCategory(ctx context.Context, category string) ([]string, error)

	// Count returns the exact unfiltered row count.
	Count(ctx context.Context) (int, error)

	// ListNames returns up to limit product names, unfiltered.
	ListNames(ctx context.Context, limit int) ([]string, error)

	// FindByName returns the first product whose name contains the given
	// fragment case-insensitively, or (nil, nil) when nothing matches.
	FindByName(ctx context.Context, fragment string) (*models.Product, error)
}

// wrapQueryError maps a backend failure onto the shared taxonomy. Deadline
// expiry becomes QUERY_TIMEOUT so logs can tell slow from broken.
func wrapQueryError(ctx context.Context, queryType models.QueryType, err error) *errors.StandardError {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.NewQueryTimeoutError(string(queryType))
	}
	return errors.NewQueryExecutionFailedError(string(queryType), err)
}
