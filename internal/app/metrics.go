package app

import "hotel_adlab/internal/domain"

type MetricsSnapshot struct {
	BannerClicks                 int                 `json:"bannerClicks"`
	SponsoredClicks              int                 `json:"sponsoredClicks"`
	BookingConfirmedCount        int                 `json:"bookingConfirmedCount"`
	AIRecommendationAcknowledged int                 `json:"aiRecommendationAcknowledged"`
	ActiveFilters                domain.FilterLabels `json:"activeFilters"`
}

// Snapshot derives the display counters of a session. It never mutates st.
func Snapshot(st State) MetricsSnapshot {
	m := MetricsSnapshot{
		BannerClicks:    st.BannerClicks,
		SponsoredClicks: st.SponsoredClicks,
		ActiveFilters:   st.Filters.Labels(),
	}
	if st.BookingConfirmed {
		m.BookingConfirmedCount = 1
	}
	if st.Recommendation != nil {
		m.AIRecommendationAcknowledged = 1
	}
	return m
}
