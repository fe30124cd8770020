package app_test

import (
	"reflect"
	"testing"

	"hotel_adlab/internal/app"
	"hotel_adlab/internal/domain"
)

func hotels(n int) []domain.HotelRecord {
	out := make([]domain.HotelRecord, n)
	for i := range out {
		out[i] = domain.HotelRecord{ID: int64(i + 1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name                string
		n, size, req        int
		wantPage, wantTotal int
		wantIDs             []int64
	}{
		{"first page", 5, 2, 1, 1, 3, []int64{1, 2}},
		{"middle page", 5, 2, 2, 2, 3, []int64{3, 4}},
		{"last partial page", 5, 2, 3, 3, 3, []int64{5}},
		{"clamped above", 5, 2, 5, 3, 3, []int64{5}},
		{"clamped below", 5, 2, 0, 1, 3, []int64{1, 2}},
		{"empty list", 0, 2, 4, 1, 1, []int64{}},
		{"exact fit", 4, 2, 2, 2, 2, []int64{3, 4}},
		{"non-positive size uses default", 3, 0, 2, 2, 2, []int64{3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := app.Paginate(hotels(tc.n), tc.size, tc.req)
			if p.Page != tc.wantPage || p.TotalPages != tc.wantTotal || p.Total != tc.n {
				t.Fatalf("got page=%d total=%d count=%d", p.Page, p.TotalPages, p.Total)
			}
			if !reflect.DeepEqual(ids(p.Items), tc.wantIDs) {
				t.Fatalf("items %v, want %v", ids(p.Items), tc.wantIDs)
			}
		})
	}
}
