package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinGuests = 1
	MaxGuests = 10
)

type BookingRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

func (r BookingRequest) Validate() error {
	if r.Guests < MinGuests || r.Guests > MaxGuests {
		return ErrInvalidGuests
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return ErrInvalidDateRange
	}
	return nil
}

// Nights counts calendar nights between check-in and check-out.
func (r BookingRequest) Nights() int {
	in := time.Date(r.CheckIn.Year(), r.CheckIn.Month(), r.CheckIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(r.CheckOut.Year(), r.CheckOut.Month(), r.CheckOut.Day(), 0, 0, 0, 0, time.UTC)
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

type BookingConfirmation struct {
	ID          uuid.UUID   `json:"id"`
	Hotel       HotelRecord `json:"hotel"`
	CheckIn     time.Time   `json:"checkIn"`
	CheckOut    time.Time   `json:"checkOut"`
	Guests      int         `json:"guests"`
	Nights      int         `json:"nights"`
	TotalPrice  int         `json:"totalPrice"`
	ConfirmedAt time.Time   `json:"confirmedAt"`
}
