// internal/products/postgres.go
package products

import (
	"context"
	"database/sql"
	"time"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/models"
)

// PostgresStore implements Store against the products relation.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "product-store"}),
	}
}

func (s *PostgresStore) NamesByCategory(ctx context.Context, category string) ([]string, error) {
	return s.queryNames(ctx, models.QueryTypeNamesByCategory, `
		SELECT name FROM products
		WHERE category ILIKE '%' || $1 || '%'
		ORDER BY name`, category)
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	start := time.Now()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	s.observe(models.QueryTypeProductCount, start, err)
	if err != nil {
		return 0, wrapQueryError(ctx, models.QueryTypeProductCount, err)
	}
	return count, nil
}

func (s *PostgresStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	return s.queryNames(ctx, models.QueryTypeProductList, `
		SELECT name FROM products
		ORDER BY name
		LIMIT $1`, limit)
}

func (s *PostgresStore) FindByName(ctx context.Context, fragment string) (*models.Product, error) {
	start := time.Now()

	var p models.Product
	var arModelURL sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, brand, price, image_url, ar_model_url
		FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1`, fragment).Scan(
		&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.ImageURL, &arModelURL,
	)
	if err == sql.ErrNoRows {
		s.observe(models.QueryTypeFindByName, start, nil)
		return nil, nil
	}
	s.observe(models.QueryTypeFindByName, start, err)
	if err != nil {
		return nil, wrapQueryError(ctx, models.QueryTypeFindByName, err)
	}
	p.ARModelURL = arModelURL.String

	return &p, nil
}

func (s *PostgresStore) queryNames(ctx context.Context, queryType models.QueryType, query string, arg interface{}) ([]string, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		s.observe(queryType, start, err)
		return nil, wrapQueryError(ctx, queryType, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			s.observe(queryType, start, err)
			return nil, wrapQueryError(ctx, queryType, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		s.observe(queryType, start, err)
		return nil, wrapQueryError(ctx, queryType, err)
	}

	s.observe(queryType, start, nil)
	return names, nil
}

func (s *PostgresStore) observe(queryType models.QueryType, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Warn("product query failed", map[string]interface{}{
			"queryType": string(queryType),
			"error":     err.Error(),
		})
	}
	metrics.ProductQueries.WithLabelValues(string(queryType), status).Inc()
	metrics.ProductQueryDuration.WithLabelValues(string(queryType)).Observe(time.Since(start).Seconds())
}
