package domain

import (
	"fmt"
	"strings"
)

type VacationType string

const (
	TypeRomantic VacationType = "romantic"
	TypeWellness VacationType = "wellness"
	TypeBudget   VacationType = "budget"
	TypeBusiness VacationType = "business"
)

// VacationTypes lists the known types in the order the storefront shows them.
var VacationTypes = []VacationType{TypeRomantic, TypeWellness, TypeBudget, TypeBusiness}

func (t VacationType) Valid() bool {
	for _, v := range VacationTypes {
		if t == v {
			return true
		}
	}
	return false
}

// HotelRecord is immutable once the catalog is built.
type HotelRecord struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Price       int          `json:"price"` // euros per night
	Rating      int          `json:"rating"`
	Type        VacationType `json:"type"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
}

func (h HotelRecord) Validate() error {
	switch {
	case h.ID <= 0:
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidHotel, h.ID)
	case strings.TrimSpace(h.Name) == "":
		return fmt.Errorf("%w: hotel %d has no name", ErrInvalidHotel, h.ID)
	case h.Price <= 0:
		return fmt.Errorf("%w: hotel %d price must be positive", ErrInvalidHotel, h.ID)
	case h.Rating < 1 || h.Rating > 5:
		return fmt.Errorf("%w: hotel %d rating %d outside 1..5", ErrInvalidHotel, h.ID, h.Rating)
	case !h.Type.Valid():
		return fmt.Errorf("%w: hotel %d has unknown type %q", ErrInvalidHotel, h.ID, h.Type)
	}
	return nil
}
