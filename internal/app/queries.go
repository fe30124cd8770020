package app

import "hotel_adlab/internal/domain"

// ListingItem is one hotel card. Sponsored is set only on the sponsored placement.
type ListingItem struct {
	domain.HotelRecord
	Sponsored *domain.SponsoredCopy `json:"sponsored,omitempty"`
}

// Listing is the storefront view of a session: filtered page, banner and active filters.
type Listing struct {
	Items      []ListingItem         `json:"items"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	Total      int                   `json:"total"`
	PageSize   int                   `json:"pageSize"`
	Banner     domain.BannerCreative `json:"banner"`
	Filters    domain.FilterLabels   `json:"filters"`
}

// BuildListing filters the catalog with the session filters and cuts the requested page.
// It returns the effective page so the caller can store the clamped value.
func BuildListing(cat Catalog, st State, pageSize int) Listing {
	filtered := Apply(cat.All(), st.Filters)
	pg := Paginate(filtered, pageSize, st.Page)

	items := make([]ListingItem, 0, len(pg.Items))
	for _, h := range pg.Items {
		it := ListingItem{HotelRecord: h}
		if h.ID == domain.SponsoredHotelID {
			sc := domain.Sponsored(h)
			it.Sponsored = &sc
		}
		items = append(items, it)
	}

	return Listing{
		Items:      items,
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
		Total:      pg.Total,
		PageSize:   pg.PageSize,
		Banner:     domain.Banner(st.AdFormat),
		Filters:    st.Filters.Labels(),
	}
}
