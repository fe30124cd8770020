package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHotel  = errors.New("invalid hotel record")
	ErrHotelNotFound = errors.New("hotel not found")

	// Validation conditions: the single user action is rejected, state is untouched.
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrInvalidGuests    = errors.New("guests must be between 1 and 10")

	// ErrReferencedEntityMissing is raised when an ad or listing points at a hotel the catalog lacks.
	ErrReferencedEntityMissing = errors.New("referenced hotel is missing from the catalog")
	ErrNoSelection             = errors.New("no hotel selected")
	ErrNoBooking               = errors.New("no confirmed booking")

	ErrNoRecommendationAvailable = errors.New("no AI recommendation to book")
	ErrRecommendationInProgress  = errors.New("a recommendation is already in progress")
	// ErrRecommendationSuperseded is returned when the session changed while the AI call was pending.
	ErrRecommendationSuperseded = errors.New("recommendation superseded by a later action")

	// Recommendation conditions.
	ErrNoMatchingHotels          = errors.New("no hotels match the current filters")
	ErrUpstreamUnavailable       = errors.New("AI endpoint unavailable")
	ErrMalformedResponseEnvelope = errors.New("AI response has no text part")
	ErrInvalidJSONResponse       = errors.New("AI response is not valid JSON")
	ErrUnknownRecommendedHotel   = errors.New("AI recommended an unknown hotel")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
)

// RecommendationError keeps the diagnostics of a failed recommendation.
// errors.Is matches both the condition (Kind) and the underlying cause.
type RecommendationError struct {
	Kind      error
	Raw       string // text fragment as returned by the model
	HotelID   int64  // raw recommendedHotelId, if one was parsed
	Reasoning string
	Err       error
}

func (e *RecommendationError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUnknownRecommendedHotel):
		return fmt.Sprintf("%v: id %d", e.Kind, e.HotelID)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *RecommendationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Upstream reports whether the failure came from the transport rather than the response content.
func (e *RecommendationError) Upstream() bool { return errors.Is(e.Kind, ErrUpstreamUnavailable) }
