package catalog_test

import (
	"context"
	"errors"
	"testing"

	"hotel_adlab/internal/catalog"
	"hotel_adlab/internal/domain"
)

func TestSeed_OrderAndLookup(t *testing.T) {
	s := catalog.MustSeed()
	all := s.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 hotels, got %d", len(all))
	}
	for i, h := range all {
		if h.ID != int64(i+1) {
			t.Fatalf("position %d holds id %d", i, h.ID)
		}
	}
	h, err := s.ByID(2)
	if err != nil || h.Price != 289 {
		t.Fatalf("unexpected hotel 2: %+v err=%v", h, err)
	}
	if _, err := s.ByID(99); !errors.Is(err, domain.ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := catalog.MustSeed()
	all := s.All()
	all[0].Name = "mutated"
	if h, _ := s.ByID(1); h.Name == "mutated" {
		t.Fatalf("catalog mutated through All()")
	}
}

func TestNew_RejectsInvalid(t *testing.T) {
	cases := map[string][]domain.HotelRecord{
		"dup id":       {catalog.Seed[0], catalog.Seed[0]},
		"zero price":   {{ID: 9, Name: "x", Price: 0, Rating: 3, Type: domain.TypeBudget}},
		"bad rating":   {{ID: 9, Name: "x", Price: 10, Rating: 6, Type: domain.TypeBudget}},
		"unknown type": {{ID: 9, Name: "x", Price: 10, Rating: 3, Type: "camping"}},
	}
	for name, recs := range cases {
		if _, err := catalog.New(recs); !errors.Is(err, domain.ErrInvalidHotel) {
			t.Fatalf("%s: expected ErrInvalidHotel, got %v", name, err)
		}
	}
}

func TestVersion_ChangesWithContent(t *testing.T) {
	a := catalog.MustSeed()
	recs := append([]domain.HotelRecord(nil), catalog.Seed...)
	recs[0].Price = 199
	b, err := catalog.New(recs)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a.Version() == b.Version() {
		t.Fatalf("expected different versions")
	}
	if a.Version() != catalog.MustSeed().Version() {
		t.Fatalf("version must be deterministic")
	}
}

type fakeRepo struct{ hs []domain.HotelRecord }

func (f *fakeRepo) UpsertHotel(ctx context.Context, h domain.HotelRecord) error { return nil }
func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	return f.hs, nil
}

func TestLoad_FromRepository(t *testing.T) {
	s, err := catalog.Load(context.Background(), &fakeRepo{hs: catalog.Seed[2:]})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 hotels, got %d", s.Len())
	}
	if _, err := s.ByID(1); err == nil {
		t.Fatalf("hotel 1 should be absent")
	}
}
