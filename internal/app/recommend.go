package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/adapters/observability"
	"hotel_adlab/internal/domain"
)

// RecommendRequest is everything one recommendation attempt reads.
type RecommendRequest struct {
	SessionID string
	Catalog   Catalog
	Filtered  []domain.HotelRecord
	Model     domain.AIModel
	Criteria  domain.FilterCriteria
	Ads       domain.AdContext
}

// Recommender composes prompt building, a memoizing cache, the (retrying) AI
// client and response validation. Cache and audit log are optional.
type Recommender struct {
	ai       domain.AIClient
	cache    domain.Cache
	audit    domain.RecommendationLog
	cacheTTL time.Duration
}

func NewRecommender(ai domain.AIClient, cache domain.Cache, audit domain.RecommendationLog, ttl time.Duration) *Recommender {
	return &Recommender{ai: ai, cache: cache, audit: audit, cacheTTL: ttl}
}

func (r *Recommender) Recommend(ctx context.Context, req RecommendRequest) (domain.RecommendationResult, error) {
	if len(req.Filtered) == 0 {
		r.record(ctx, req, "", domain.RecommendationResult{}, domain.ErrNoMatchingHotels, false, 0)
		return domain.RecommendationResult{}, domain.ErrNoMatchingHotels
	}

	prompt := BuildPrompt(req.Model, req.Criteria, req.Filtered, req.Ads)
	promptHash := hashPrompt(prompt)
	key := CacheKey(req.SessionID, promptHash, req.Criteria, req.Catalog.Version())

	if r.cache != nil {
		var cached domain.RecommendationResult
		ok, err := r.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("recommendation cache read failed")
		}
		if ok && err == nil {
			r.record(ctx, req, promptHash, cached, nil, true, 0)
			return cached, nil
		}
	}

	start := time.Now()
	env, err := r.ai.GenerateContent(ctx, prompt)
	if err != nil {
		kind := domain.ErrUpstreamUnavailable
		if errors.Is(err, domain.ErrMalformedResponseEnvelope) {
			kind = domain.ErrMalformedResponseEnvelope
		}
		rerr := &domain.RecommendationError{Kind: kind, Err: err}
		r.record(ctx, req, promptHash, domain.RecommendationResult{}, rerr, false, time.Since(start))
		return domain.RecommendationResult{}, rerr
	}

	res, err := mapRecommendation(env, req.Catalog)
	r.record(ctx, req, promptHash, res, err, false, time.Since(start))
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, res, int(r.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("recommendation cache write failed")
		}
	}
	return res, nil
}

// CacheKey scopes a memoized result to one session, prompt, filter state and catalog version.
func CacheKey(sessionID, promptHash string, c domain.FilterCriteria, catalogVersion string) string {
	return fmt.Sprintf("rec:%s:%s:%s:%s", sessionID, promptHash, c.Key(), catalogVersion)
}

func hashPrompt(p string) string {
	sum := sha256.Sum256([]byte(p))
	return hex.EncodeToString(sum[:16])
}

// record logs the outcome, counts it, and writes the audit entry (best effort).
func (r *Recommender) record(ctx context.Context, req RecommendRequest, promptHash string, res domain.RecommendationResult, err error, cached bool, took time.Duration) {
	phase := PhaseFor(err)
	observability.ObserveRecommendation(string(phase), cached)

	e := domain.RecommendationLogEntry{
		SessionID:  req.SessionID,
		Model:      req.Model,
		PromptHash: promptHash,
		Filters:    req.Criteria.Key(),
		Phase:      phase,
		Cached:     cached,
		Latency:    took,
		CreatedAt:  time.Now().UTC(),
	}

	var rerr *domain.RecommendationError
	switch {
	case err == nil:
		id := res.HotelID
		e.HotelID = &id
		e.Reasoning = res.Reasoning
		log.Info().Str("session", req.SessionID).Int64("hotel", id).Bool("cached", cached).
			Dur("took", took).Msg("AI recommendation received")
	case errors.As(err, &rerr):
		e.Error = err.Error()
		e.Raw = rerr.Raw
		e.Reasoning = rerr.Reasoning
		if rerr.HotelID != 0 {
			id := rerr.HotelID
			e.HotelID = &id
		}
		ev := log.Warn()
		if rerr.Upstream() {
			ev = log.Error()
		}
		ev.Err(err).Str("session", req.SessionID).Str("raw", rerr.Raw).Msg("AI recommendation failed")
	default:
		e.Error = err.Error()
		log.Warn().Err(err).Str("session", req.SessionID).Msg("AI recommendation skipped")
	}

	if r.audit == nil {
		return
	}
	// the attempt's own context may already be cancelled; the audit row still matters
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if aerr := r.audit.LogRecommendation(actx, e); aerr != nil {
		log.Warn().Err(aerr).Str("session", req.SessionID).Msg("recommendation audit write failed")
	}
}
