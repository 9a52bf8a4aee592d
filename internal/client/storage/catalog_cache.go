package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/dbx"
)

// CatalogCache keeps the last catalog that was fetched successfully, in
// server order.
type CatalogCache interface {
	Replace(ctx context.Context, cars []models.Car, fetchedAt time.Time) error
	List(ctx context.Context) ([]models.Car, time.Time, error)
}

type SQLiteCatalogCache struct {
	db *sql.DB
}

func NewSQLiteCatalogCache(db *sql.DB) *SQLiteCatalogCache {
	return &SQLiteCatalogCache{db: db}
}

// Replace swaps the cached catalog for cars in one transaction.
func (c *SQLiteCatalogCache) Replace(ctx context.Context, cars []models.Car, fetchedAt time.Time) error {
	stamp := fetchedAt.UTC().Format(time.RFC3339)

	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_cache`); err != nil {
			return fmt.Errorf("failed to clear catalog cache: %w", err)
		}

		for i, car := range cars {
			payload, err := json.Marshal(car)
			if err != nil {
				return fmt.Errorf("failed to encode car %s: %w", car.ID, err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO catalog_cache (position, car_id, payload, fetched_at) VALUES (?, ?, ?, ?)`,
				i, car.ID, payload, stamp)
			if err != nil {
				return fmt.Errorf("failed to insert car %s: %w", car.ID, err)
			}
		}
		return nil
	})
}

// List returns the cached cars and the time they were fetched. An empty
// cache yields (nil, zero time, nil).
func (c *SQLiteCatalogCache) List(ctx context.Context) ([]models.Car, time.Time, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT payload, fetched_at FROM catalog_cache ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to select catalog cache: %w", err)
	}
	defer rows.Close()

	var (
		result    []models.Car
		fetchedAt time.Time
	)
	for rows.Next() {
		var payload []byte
		var stamp string
		if err := rows.Scan(&payload, &stamp); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan catalog cache row: %w", err)
		}

		var car models.Car
		if err := json.Unmarshal(payload, &car); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to decode cached car: %w", err)
		}
		result = append(result, car)

		if fetchedAt.IsZero() {
			if t, err := time.Parse(time.RFC3339, stamp); err == nil {
				fetchedAt = t
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate catalog cache: %w", err)
	}

	return result, fetchedAt, nil
}
