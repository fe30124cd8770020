package app

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"hotel_adlab/internal/domain"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the first string found at paths, or "".
func lookupStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok {
			return s
		}
	}
	return ""
}

// firstInt64Flexible: int64 from several paths (whole float64 / numeric string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			if v != math.Trunc(v) {
				continue
			}
			x := int64(v)
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** recommendation mapper **********/

// mapRecommendation turns a response envelope into a validated result.
// Every failure carries the raw text so it can be shown and logged.
func mapRecommendation(env domain.Envelope, cat Catalog) (domain.RecommendationResult, error) {
	text, ok := env.FirstText()
	if !ok {
		return domain.RecommendationResult{}, &domain.RecommendationError{Kind: domain.ErrMalformedResponseEnvelope}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return domain.RecommendationResult{}, &domain.RecommendationError{
			Kind: domain.ErrInvalidJSONResponse,
			Raw:  text,
			Err:  err,
		}
	}

	reasoning := lookupStr(payload, "reasoning")
	id := firstInt64Flexible(payload, "recommendedHotelId")
	if id == nil {
		return domain.RecommendationResult{}, &domain.RecommendationError{
			Kind:      domain.ErrUnknownRecommendedHotel,
			Raw:       text,
			Reasoning: reasoning,
		}
	}

	h, err := cat.ByID(*id)
	if err != nil {
		return domain.RecommendationResult{}, &domain.RecommendationError{
			Kind:      domain.ErrUnknownRecommendedHotel,
			Raw:       text,
			HotelID:   *id,
			Reasoning: reasoning,
			Err:       err,
		}
	}
	return domain.NewRecommendationResult(h, reasoning), nil
}
