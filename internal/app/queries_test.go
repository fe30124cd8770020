package app_test

import (
	"reflect"
	"testing"

	"hotel_adlab/internal/app"
	"hotel_adlab/internal/catalog"
	"hotel_adlab/internal/domain"
)

func listingIDs(l app.Listing) []int64 {
	out := make([]int64, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestBuildListing_DefaultPage(t *testing.T) {
	l := app.BuildListing(catalog.MustSeed(), app.NewState(), app.DefaultPageSize)

	if !reflect.DeepEqual(listingIDs(l), []int64{1, 2}) || l.Total != 4 || l.TotalPages != 2 || l.Page != 1 {
		t.Fatalf("unexpected listing: %+v", l)
	}
	if l.Items[0].Sponsored != nil {
		t.Fatalf("hotel 1 is not the sponsored placement")
	}
	if sp := l.Items[1].Sponsored; sp == nil || sp.Headline != "Sponsored: Château Romance & Spa" {
		t.Fatalf("sponsored copy missing: %+v", sp)
	}
	if l.Banner.Format != domain.AdTextBased || l.Banner.Headline != "Valentines Special - 30% Off!" {
		t.Fatalf("banner: %+v", l.Banner)
	}
	if l.Filters != (domain.FilterLabels{Price: "All", Rating: "All", Type: "All"}) {
		t.Fatalf("filters: %+v", l.Filters)
	}
}

func TestBuildListing_FilteredAndFormat(t *testing.T) {
	st := app.NewState()
	st.SetFilters(domain.ParseCriteria("All", "All", "business"))
	st.SetPreferences(domain.AdImageOnly, domain.DefaultAIModel)

	l := app.BuildListing(catalog.MustSeed(), st, app.DefaultPageSize)
	if !reflect.DeepEqual(listingIDs(l), []int64{4}) || l.TotalPages != 1 {
		t.Fatalf("unexpected listing: %+v", l)
	}
	if l.Banner.Format != domain.AdImageOnly || l.Banner.Headline != "" || l.Banner.HotelID != 1 {
		t.Fatalf("banner: %+v", l.Banner)
	}
}
