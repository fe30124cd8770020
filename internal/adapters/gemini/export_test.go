package gemini

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Schedule lists the waits the policy allows between attempts.
func (p RetryPolicy) Schedule() []time.Duration {
	b := p.backOff(context.Background())
	var out []time.Duration
	for {
		d := b.NextBackOff()
		if d == backoff.Stop {
			return out
		}
		out = append(out, d)
	}
}

func (r *Retrying) OnWait(f func(time.Duration)) { r.waited = f }
