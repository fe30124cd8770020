package app

import "hotel_adlab/internal/domain"

// Catalog is the read side of the hotel catalog the app works against.
type Catalog interface {
	All() []domain.HotelRecord
	ByID(id int64) (domain.HotelRecord, error)
	Version() string
}

// Apply returns the hotels matching c, in catalog order.
// Criteria are normalized first, so an unknown value behaves like All.
func Apply(hotels []domain.HotelRecord, c domain.FilterCriteria) []domain.HotelRecord {
	c = c.Normalized()
	out := make([]domain.HotelRecord, 0, len(hotels))
	for _, h := range hotels {
		if c.Match(h) {
			out = append(out, h)
		}
	}
	return out
}
