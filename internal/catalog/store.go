// Package catalog holds the read-only hotel list of the storefront.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"hotel_adlab/internal/domain"
)

// Store is safe for concurrent use: it is never mutated after New.
type Store struct {
	hotels  []domain.HotelRecord
	byID    map[int64]int
	version string
}

// New validates the records and freezes them in insertion order.
func New(records []domain.HotelRecord) (*Store, error) {
	s := &Store{
		hotels: make([]domain.HotelRecord, 0, len(records)),
		byID:   make(map[int64]int, len(records)),
	}
	for _, h := range records {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byID[h.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidHotel, h.ID)
		}
		s.byID[h.ID] = len(s.hotels)
		s.hotels = append(s.hotels, h)
	}
	b, err := json.Marshal(s.hotels)
	if err != nil {
		return nil, fmt.Errorf("hash catalog: %w", err)
	}
	sum := sha256.Sum256(b)
	s.version = hex.EncodeToString(sum[:8])
	return s, nil
}

// MustSeed returns the store built from Seed.
func MustSeed() *Store {
	s, err := New(Seed)
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads the catalog once from repo.
func Load(ctx context.Context, repo domain.CatalogRepository) (*Store, error) {
	hs, err := repo.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(hs)
}

// All returns a copy so callers cannot mutate the catalog.
func (s *Store) All() []domain.HotelRecord {
	out := make([]domain.HotelRecord, len(s.hotels))
	copy(out, s.hotels)
	return out
}

func (s *Store) ByID(id int64) (domain.HotelRecord, error) {
	i, ok := s.byID[id]
	if !ok {
		return domain.HotelRecord{}, fmt.Errorf("%w: id %d", domain.ErrHotelNotFound, id)
	}
	return s.hotels[i], nil
}

func (s *Store) Len() int { return len(s.hotels) }

// Version changes whenever the catalog content changes.
func (s *Store) Version() string { return s.version }
