package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel_adlab/internal/domain"
)

// State is the interaction state of one session. Its methods are the only
// transitions; each either applies fully or, when it returns an error, leaves
// the state as documented for that command.
type State struct {
	Filters  domain.FilterCriteria `json:"filters"`
	Page     int                   `json:"page"`
	AdFormat domain.AdFormat       `json:"adFormat"`
	Model    domain.AIModel        `json:"model"`

	Selected *domain.HotelRecord `json:"selected,omitempty"`

	Recommendation       *domain.RecommendationResult `json:"recommendation,omitempty"`
	RecommendationPhase  domain.Phase                 `json:"recommendationPhase"`
	RecommendationNotice string                       `json:"recommendationNotice,omitempty"`

	BannerClicks    int `json:"bannerClicks"`
	SponsoredClicks int `json:"sponsoredClicks"`

	BookingConfirmed bool                        `json:"bookingConfirmed"`
	FormSubmitted    bool                        `json:"formSubmitted"`
	Booking          *domain.BookingConfirmation `json:"booking,omitempty"`

	// recGen changes whenever a pending recommendation must not be applied.
	recGen uint64
}

func NewState() State {
	return State{
		Filters:             domain.DefaultCriteria(),
		Page:                1,
		AdFormat:            domain.DefaultAdFormat,
		Model:               domain.DefaultAIModel,
		RecommendationPhase: domain.PhaseIdle,
	}
}

// Clone returns a copy that shares no pointers with s.
func (s State) Clone() State {
	if s.Selected != nil {
		h := *s.Selected
		s.Selected = &h
	}
	if s.Recommendation != nil {
		r := *s.Recommendation
		s.Recommendation = &r
	}
	if s.Booking != nil {
		b := *s.Booking
		s.Booking = &b
	}
	return s
}

func (s *State) SetFilters(c domain.FilterCriteria) {
	s.Filters = c.Normalized()
	s.Page = 1
	s.recGen++
	if s.RecommendationPhase == domain.PhaseRequesting {
		s.RecommendationPhase = domain.PhaseIdle
	}
}

func (s *State) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	s.Page = p
}

func (s *State) SetPreferences(f domain.AdFormat, m domain.AIModel) {
	s.AdFormat = domain.ParseAdFormat(string(f))
	s.Model = domain.ParseAIModel(string(m))
}

// SelectHotel makes h the hotel being booked and drops any recommendation.
func (s *State) SelectHotel(h domain.HotelRecord) {
	s.Selected = &h
	s.clearRecommendation()
	s.BookingConfirmed = false
	s.Booking = nil
}

// ClickBanner counts the click before resolving the banner hotel, so a
// missing hotel still registers the click.
func (s *State) ClickBanner(cat Catalog) (domain.HotelRecord, error) {
	s.BannerClicks++
	return s.selectByID(cat, domain.BannerHotelID)
}

func (s *State) ClickSponsored(cat Catalog, id int64) (domain.HotelRecord, error) {
	s.SponsoredClicks++
	return s.selectByID(cat, id)
}

func (s *State) DirectBook(cat Catalog, id int64) (domain.HotelRecord, error) {
	return s.selectByID(cat, id)
}

func (s *State) selectByID(cat Catalog, id int64) (domain.HotelRecord, error) {
	h, err := cat.ByID(id)
	if err != nil {
		s.Selected = nil
		s.clearRecommendation()
		s.BookingConfirmed = false
		s.Booking = nil
		if errors.Is(err, domain.ErrHotelNotFound) {
			return domain.HotelRecord{}, fmt.Errorf("%w: hotel %d", domain.ErrReferencedEntityMissing, id)
		}
		return domain.HotelRecord{}, err
	}
	s.SelectHotel(h)
	return h, nil
}

// ConfirmBooking books the selected hotel. Nothing changes on a validation error.
func (s *State) ConfirmBooking(req domain.BookingRequest, now time.Time) (domain.BookingConfirmation, error) {
	if s.Selected == nil {
		return domain.BookingConfirmation{}, domain.ErrNoSelection
	}
	if err := req.Validate(); err != nil {
		return domain.BookingConfirmation{}, err
	}
	nights := req.Nights()
	c := domain.BookingConfirmation{
		ID:          uuid.New(),
		Hotel:       *s.Selected,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
		Nights:      nights,
		TotalPrice:  nights * s.Selected.Price,
		ConfirmedAt: now,
	}
	s.BookingConfirmed = true
	s.FormSubmitted = true
	s.Booking = &c
	return c, nil
}

// BookRecommendation promotes the current recommendation to the selection and confirms it.
func (s *State) BookRecommendation() (domain.HotelRecord, error) {
	if s.Recommendation == nil {
		return domain.HotelRecord{}, domain.ErrNoRecommendationAvailable
	}
	h := s.Recommendation.Hotel
	s.Selected = &h
	s.BookingConfirmed = true
	s.FormSubmitted = true
	s.Booking = nil
	return h, nil
}

// ClearSelection resets everything booking related. Click counters are kept.
func (s *State) ClearSelection() {
	s.Selected = nil
	s.clearRecommendation()
	s.BookingConfirmed = false
	s.FormSubmitted = false
	s.Booking = nil
}

func (s *State) clearRecommendation() {
	s.recGen++
	s.Recommendation = nil
	s.RecommendationPhase = domain.PhaseIdle
	s.RecommendationNotice = ""
}

// startRecommendation returns the generation a result must match to be applied.
func (s *State) startRecommendation() uint64 {
	s.recGen++
	s.Recommendation = nil
	s.RecommendationPhase = domain.PhaseRequesting
	s.RecommendationNotice = ""
	return s.recGen
}

// current reports whether nothing invalidated the recommendation started at gen.
func (s *State) current(gen uint64) bool { return s.recGen == gen }

func (s *State) finishRecommendation(res domain.RecommendationResult) {
	s.Recommendation = &res
	s.RecommendationPhase = domain.PhaseSucceeded
	s.RecommendationNotice = ""
}

func (s *State) failRecommendation(err error) {
	s.Recommendation = nil
	s.RecommendationPhase = PhaseFor(err)
	s.RecommendationNotice = NoticeFor(err)
}

// PhaseFor classifies a recommendation error into its terminal phase.
func PhaseFor(err error) domain.Phase {
	switch {
	case err == nil:
		return domain.PhaseSucceeded
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return domain.PhaseFailed
	default:
		return domain.PhaseRejected
	}
}

// NoticeFor is the message shown in place of a recommendation.
func NoticeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrNoMatchingHotels):
		return "No hotels found matching current filters."
	case errors.Is(err, domain.ErrUnknownRecommendedHotel):
		return "AI recommended an invalid hotel ID not found in the list."
	case errors.Is(err, domain.ErrMalformedResponseEnvelope):
		return "AI could not generate a valid recommendation format (no text part found)."
	case errors.Is(err, domain.ErrInvalidJSONResponse):
		return "AI response was not valid JSON."
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "Error connecting to the AI service. Check the API key and network."
	default:
		return err.Error()
	}
}
