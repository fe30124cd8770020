package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_adlab/internal/adapters/observability"
	"hotel_adlab/internal/domain"
)

// Session serializes every command of one storefront visitor. A single
// recommendation may be outstanding at a time; the AI call runs without
// holding the state lock so reads stay responsive while it is in flight.
type Session struct {
	ID string

	mu       sync.Mutex
	st       State
	lastSeen time.Time
	closed   bool

	cat      Catalog
	rec      *Recommender
	ads      domain.AdContext
	pageSize int
	now      func() time.Time

	inflight *semaphore.Weighted
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSession(id string, cat Catalog, rec *Recommender, pageSize int) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:       id,
		st:       NewState(),
		cat:      cat,
		rec:      rec,
		ads:      domain.DefaultAdContext(),
		pageSize: pageSize,
		now:      time.Now,
		inflight: semaphore.NewWeighted(1),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.lastSeen = s.now()
	return s
}

// do runs fn under the session lock and refreshes the idle timer.
func (s *Session) do(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}
	s.lastSeen = s.now()
	return fn(&s.st)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

func (s *Session) Metrics() MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot(s.st)
}

// Listing builds the current page and stores the clamped page number back.
func (s *Session) Listing() (Listing, error) {
	var l Listing
	err := s.do(func(st *State) error {
		l = BuildListing(s.cat, *st, s.pageSize)
		st.Page = l.Page
		return nil
	})
	return l, err
}

func (s *Session) SetFilters(c domain.FilterCriteria) (State, error) {
	return s.mutate(func(st *State) error {
		st.SetFilters(c)
		log.Debug().Str("session", s.ID).Str("filters", st.Filters.Key()).Msg("filters changed")
		return nil
	})
}

func (s *Session) SetPage(p int) (State, error) {
	return s.mutate(func(st *State) error {
		st.SetPage(p)
		return nil
	})
}

func (s *Session) SetPreferences(f domain.AdFormat, m domain.AIModel) (State, error) {
	return s.mutate(func(st *State) error {
		st.SetPreferences(f, m)
		return nil
	})
}

func (s *Session) ClickBanner() (domain.HotelRecord, error) {
	var h domain.HotelRecord
	err := s.do(func(st *State) error {
		var err error
		h, err = st.ClickBanner(s.cat)
		observability.ObserveAdClick("banner", string(st.AdFormat))
		log.Info().Str("session", s.ID).Int("clicks", st.BannerClicks).Err(err).Msg("banner ad clicked")
		return err
	})
	return h, err
}

func (s *Session) ClickSponsored(id int64) (domain.HotelRecord, error) {
	var h domain.HotelRecord
	err := s.do(func(st *State) error {
		var err error
		h, err = st.ClickSponsored(s.cat, id)
		observability.ObserveAdClick("sponsored", string(st.AdFormat))
		log.Info().Str("session", s.ID).Int64("hotel", id).Int("clicks", st.SponsoredClicks).Err(err).Msg("sponsored ad clicked")
		return err
	})
	return h, err
}

func (s *Session) DirectBook(id int64) (domain.HotelRecord, error) {
	var h domain.HotelRecord
	err := s.do(func(st *State) error {
		var err error
		h, err = st.DirectBook(s.cat, id)
		return err
	})
	return h, err
}

func (s *Session) ConfirmBooking(req domain.BookingRequest) (domain.BookingConfirmation, error) {
	var c domain.BookingConfirmation
	err := s.do(func(st *State) error {
		var err error
		c, err = st.ConfirmBooking(req, s.now().UTC())
		if err != nil {
			log.Debug().Err(err).Str("session", s.ID).Msg("booking rejected")
			return err
		}
		observability.ObserveBooking("form")
		log.Info().Str("session", s.ID).Str("booking", c.ID.String()).Int64("hotel", c.Hotel.ID).
			Int("nights", c.Nights).Int("total", c.TotalPrice).Msg("booking confirmed")
		return nil
	})
	return c, err
}

func (s *Session) BookRecommendation() (domain.HotelRecord, error) {
	var h domain.HotelRecord
	err := s.do(func(st *State) error {
		var err error
		h, err = st.BookRecommendation()
		if err == nil {
			observability.ObserveBooking("recommendation")
			log.Info().Str("session", s.ID).Int64("hotel", h.ID).Msg("recommended hotel booked")
		}
		return err
	})
	return h, err
}

// Booking returns the last form confirmation, if any.
func (s *Session) Booking() (domain.BookingConfirmation, error) {
	var c domain.BookingConfirmation
	err := s.do(func(st *State) error {
		if st.Booking == nil {
			return domain.ErrNoBooking
		}
		c = *st.Booking
		return nil
	})
	return c, err
}

func (s *Session) ClearSelection() (State, error) {
	return s.mutate(func(st *State) error {
		st.ClearSelection()
		return nil
	})
}

func (s *Session) mutate(fn func(st *State) error) (State, error) {
	var out State
	err := s.do(func(st *State) error {
		if err := fn(st); err != nil {
			return err
		}
		out = st.Clone()
		return nil
	})
	return out, err
}

// Recommend asks the AI for a pick among the currently filtered hotels.
// A second call while one is outstanding fails with ErrRecommendationInProgress.
// If the session is closed during the call the result is dropped.
func (s *Session) Recommend(ctx context.Context) (domain.RecommendationResult, error) {
	if !s.inflight.TryAcquire(1) {
		return domain.RecommendationResult{}, domain.ErrRecommendationInProgress
	}
	defer s.inflight.Release(1)

	var (
		req RecommendRequest
		gen uint64
	)
	err := s.do(func(st *State) error {
		req = RecommendRequest{
			SessionID: s.ID,
			Catalog:   s.cat,
			Filtered:  Apply(s.cat.All(), st.Filters),
			Model:     st.Model,
			Criteria:  st.Filters,
			Ads:       s.ads,
		}
		gen = st.startRecommendation()
		return nil
	})
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	res, rerr := s.rec.Recommend(cctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Debug().Str("session", s.ID).Msg("session closed during recommendation; result dropped")
		return domain.RecommendationResult{}, domain.ErrSessionClosed
	}
	s.lastSeen = s.now()
	if !s.st.current(gen) {
		log.Debug().Str("session", s.ID).Msg("selection changed during recommendation; result dropped")
		return domain.RecommendationResult{}, domain.ErrRecommendationSuperseded
	}
	if rerr != nil {
		s.st.failRecommendation(rerr)
		return domain.RecommendationResult{}, rerr
	}
	s.st.finishRecommendation(res)
	return res, nil
}

// Close cancels any outstanding recommendation. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
