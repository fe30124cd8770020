package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const All = "All"

type PriceBand string

const (
	PriceAll    PriceBand = All
	PriceBudget PriceBand = "budget"
	PriceMid    PriceBand = "mid"
	PriceLuxury PriceBand = "luxury"
)

var priceLabels = map[PriceBand]string{
	PriceAll:    All,
	PriceBudget: "Budget (< €150)",
	PriceMid:    "Mid-range (€150-€250)",
	PriceLuxury: "Luxury (> €250)",
}

func (p PriceBand) Valid() bool {
	_, ok := priceLabels[p]
	return ok
}

// Label is the text shown in the storefront's price selector.
func (p PriceBand) Label() string {
	if l, ok := priceLabels[p]; ok {
		return l
	}
	return All
}

// Match reports whether price falls inside the band. All matches everything.
func (p PriceBand) Match(price int) bool {
	switch p {
	case PriceBudget:
		return price < 150
	case PriceMid:
		return price >= 150 && price <= 250
	case PriceLuxury:
		return price > 250
	default:
		return true
	}
}

// ParsePriceBand accepts either the selector label or the short code.
// Anything else yields PriceAll.
func ParsePriceBand(s string) PriceBand {
	s = strings.TrimSpace(s)
	for band, label := range priceLabels {
		if s == label {
			return band
		}
	}
	if b := PriceBand(strings.ToLower(s)); b.Valid() {
		return b
	}
	return PriceAll
}

// RatingFilter is an exact star rating; zero means All.
type RatingFilter int

const RatingAll RatingFilter = 0

func (r RatingFilter) Valid() bool { return r == RatingAll || (r >= 3 && r <= 5) }

func (r RatingFilter) Label() string {
	if r == RatingAll || !r.Valid() {
		return All
	}
	return strconv.Itoa(int(r))
}

func ParseRating(s string) RatingFilter {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return RatingAll
	}
	if r := RatingFilter(n); r.Valid() {
		return r
	}
	return RatingAll
}

// TypeFilter is either All or one of the VacationTypes.
type TypeFilter string

const TypeAll TypeFilter = All

func (t TypeFilter) Valid() bool { return t == TypeAll || VacationType(t).Valid() }

func ParseType(s string) TypeFilter {
	s = strings.TrimSpace(s)
	if t := TypeFilter(strings.ToLower(s)); t.Valid() {
		return t
	}
	return TypeAll
}

// FilterCriteria is the transient filter selection of a session.
// Call Normalized before trusting any field.
type FilterCriteria struct {
	Price  PriceBand    `json:"price"`
	Rating RatingFilter `json:"rating"`
	Type   TypeFilter   `json:"type"`
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Price: PriceAll, Rating: RatingAll, Type: TypeAll}
}

// ParseCriteria builds criteria from raw selector values.
func ParseCriteria(price, rating, typ string) FilterCriteria {
	return FilterCriteria{Price: ParsePriceBand(price), Rating: ParseRating(rating), Type: ParseType(typ)}
}

// Normalized maps every out-of-domain field to All.
func (c FilterCriteria) Normalized() FilterCriteria {
	if !c.Price.Valid() {
		c.Price = PriceAll
	}
	if !c.Rating.Valid() {
		c.Rating = RatingAll
	}
	if !c.Type.Valid() {
		c.Type = TypeAll
	}
	return c
}

// Match reports whether h satisfies every active predicate.
func (c FilterCriteria) Match(h HotelRecord) bool {
	c = c.Normalized()
	if !c.Price.Match(h.Price) {
		return false
	}
	if c.Rating != RatingAll && h.Rating != int(c.Rating) {
		return false
	}
	if c.Type != TypeAll && string(h.Type) != string(c.Type) {
		return false
	}
	return true
}

// Key is a stable identifier of the normalized criteria, used in cache keys.
func (c FilterCriteria) Key() string {
	c = c.Normalized()
	return fmt.Sprintf("price=%s|rating=%d|type=%s", c.Price, c.Rating, c.Type)
}

// Labels returns the human readable values in selector order (price, rating, type).
func (c FilterCriteria) Labels() FilterLabels {
	c = c.Normalized()
	return FilterLabels{Price: c.Price.Label(), Rating: c.Rating.Label(), Type: string(c.Type)}
}

type FilterLabels struct {
	Price  string `json:"price"`
	Rating string `json:"rating"`
	Type   string `json:"type"`
}
