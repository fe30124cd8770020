package domain

import (
	"context"
	"time"
)

type CatalogRepository interface {
	UpsertHotel(ctx context.Context, h HotelRecord) error
	ListHotels(ctx context.Context) ([]HotelRecord, error)
}

// AIClient performs a single structured-output generation call.
type AIClient interface {
	GenerateContent(ctx context.Context, prompt string) (Envelope, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type RecommendationLog interface {
	LogRecommendation(ctx context.Context, e RecommendationLogEntry) error
}

// RecommendationLogEntry is one audited recommendation attempt.
type RecommendationLogEntry struct {
	SessionID  string
	Model      AIModel
	PromptHash string
	Filters    string
	Phase      Phase
	HotelID    *int64
	Reasoning  string
	Raw        string
	Error      string
	Cached     bool
	Latency    time.Duration
	CreatedAt  time.Time
}
