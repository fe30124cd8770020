package gemini

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/domain"
)

// RetryPolicy bounds the attempts made for one recommendation.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultRetryPolicy is 3 attempts waiting 4 then 8 units, capped at 10 units.
// Production uses a unit of one second; tests shrink it.
func DefaultRetryPolicy(unit time.Duration) RetryPolicy {
	if unit <= 0 {
		unit = time.Second
	}
	return RetryPolicy{Attempts: 3, Initial: 4 * unit, Max: 10 * unit}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.Initial
	eb.Multiplier = 2
	eb.MaxInterval = p.Max
	eb.RandomizationFactor = 0
	eb.MaxElapsedTime = 0
	eb.Reset()

	retries := p.Attempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}

// Retrying wraps an AIClient and repeats transient failures under a RetryPolicy.
type Retrying struct {
	next   domain.AIClient
	policy RetryPolicy
	waited func(time.Duration) // optional, sees every wait before it happens
}

func NewRetrying(next domain.AIClient, p RetryPolicy) *Retrying {
	return &Retrying{next: next, policy: p}
}

func (r *Retrying) GenerateContent(ctx context.Context, prompt string) (domain.Envelope, error) {
	var env domain.Envelope
	attempt := 0
	op := func() error {
		attempt++
		out, err := r.next.GenerateContent(ctx, prompt)
		if err != nil {
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		env = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("AI call failed, retrying")
		if r.waited != nil {
			r.waited(wait)
		}
	}
	if err := backoff.RetryNotify(op, r.policy.backOff(ctx), notify); err != nil {
		return domain.Envelope{}, err
	}
	return env, nil
}
