// Package catalog holds the public list of rentable cars. Its lifecycle is
// independent of the session: it is fetched without credentials and a
// failure never affects authentication state.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/carrental/internal/client/client"
	"github.com/dmitrijs2005/carrental/internal/client/models"
	"github.com/dmitrijs2005/carrental/internal/client/notice"
	"github.com/dmitrijs2005/carrental/internal/client/storage"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

const MsgLoadFailed = "Failed to load available cars. Please refresh the page."

type Fetcher interface {
	FetchCars(ctx context.Context) ([]models.Car, error)
}

type Service struct {
	fetcher  Fetcher
	cache    storage.CatalogCache
	notifier notice.Notifier
	logger   logging.Logger
	now      func() time.Time

	mu        sync.RWMutex
	cars      []models.Car
	fetchedAt time.Time
}

// New builds the catalog. cache may be nil.
func New(fetcher Fetcher, cache storage.CatalogCache, notifier notice.Notifier, logger logging.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		notifier: notifier,
		logger:   logger.With("component", "catalog"),
		now:      time.Now,
	}
}

// Refresh fetches the catalog once. On failure the previous list is kept and
// one error notice is shown; there is no retry.
func (s *Service) Refresh(ctx context.Context) error {
	cars, err := s.fetcher.FetchCars(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.notifier.Notify(ctx, notice.Error(failureMessage(err)))
		return fmt.Errorf("refresh catalog: %w", err)
	}

	fetchedAt := s.now()
	s.mu.Lock()
	s.cars = cars
	s.fetchedAt = fetchedAt
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.Replace(ctx, cars, fetchedAt); err != nil {
			s.logger.Warn(ctx, "catalog cache write failed", "error", err)
		}
	}
	s.logger.Debug(ctx, "catalog refreshed", "cars", len(cars))
	return nil
}

// failureMessage uses the server's own message when it answered with
// success=false, and the generic message otherwise.
func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusOK && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgLoadFailed
}

// Cars returns a copy of the current list, in server order.
func (s *Service) Cars() []models.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Car(nil), s.cars...)
}

// FetchedAt is the time of the last successful refresh, zero if none.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Find returns the car with id from the current list.
func (s *Service) Find(id string) (models.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cars {
		if c.ID == id {
			return c, true
		}
	}
	return models.Car{}, false
}

// Cached returns the last list persisted locally.
func (s *Service) Cached(ctx context.Context) ([]models.Car, time.Time, error) {
	if s.cache == nil {
		return nil, time.Time{}, nil
	}
	cars, at, err := s.cache.List(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read catalog cache: %w", err)
	}
	return cars, at, nil
}
