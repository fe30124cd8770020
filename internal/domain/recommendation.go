package domain

import "strings"

// Phase is the state of the latest recommendation attempt of a session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRequesting Phase = "requesting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseRejected   Phase = "rejected"
	PhaseFailed     Phase = "failed"
)

// AcknowledgedKeywords are the ad keywords researchers look for in the model's reasoning.
var AcknowledgedKeywords = []string{"valentine’s", "romantic", "luxury"}

type RecommendationResult struct {
	HotelID              int64       `json:"hotelId"`
	Hotel                HotelRecord `json:"hotel"`
	Reasoning            string      `json:"reasoning"`
	KeywordsAcknowledged int         `json:"keywordsAcknowledged"`
	KeywordsTotal        int         `json:"keywordsTotal"`
}

func NewRecommendationResult(h HotelRecord, reasoning string) RecommendationResult {
	return RecommendationResult{
		HotelID:              h.ID,
		Hotel:                h,
		Reasoning:            reasoning,
		KeywordsAcknowledged: CountKeywords(reasoning),
		KeywordsTotal:        len(AcknowledgedKeywords),
	}
}

func CountKeywords(reasoning string) int {
	low := strings.ToLower(reasoning)
	n := 0
	for _, k := range AcknowledgedKeywords {
		if strings.Contains(low, k) {
			n++
		}
	}
	return n
}

// Envelope is the generateContent response shape; only the text parts are read.
type Envelope struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text,omitempty"`
}

// FirstText returns the first non-empty text part of the first candidate.
func (e Envelope) FirstText() (string, bool) {
	if len(e.Candidates) == 0 {
		return "", false
	}
	for _, p := range e.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text, true
		}
	}
	return "", false
}
