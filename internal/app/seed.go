package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_adlab/internal/domain"
)

// SeedCatalog upserts records with at most workers concurrent writes.
// Every record is attempted; the returned error joins the individual failures.
func SeedCatalog(ctx context.Context, repo domain.CatalogRepository, records []domain.HotelRecord, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, h := range records {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(h domain.HotelRecord) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotel(ctx, h); err != nil {
				log.Warn().Int64("id", h.ID).Err(err).Msg("seed failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("hotel %d: %w", h.ID, err))
				mu.Unlock()
				return
			}
			log.Info().Int64("id", h.ID).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	return errors.Join(errs...)
}
