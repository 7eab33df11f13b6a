// Package traffic drives synthetic load through rate limiters to compare
// admission behavior under burst and steady conditions.
//
// The runner is demonstration and test tooling: it observes limiters
// through their public Allow surface and never participates in real
// admission decisions.
package traffic

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the minimal admission surface the runner drives. Both
// ratelimit.TokenLimiter and ratelimit.LeakyLimiter satisfy it.
type Limiter interface {
	Allow() bool
}

// Profile describes one synthetic load shape: a burst of back-to-back
// calls, an optional pause, then a paced steady phase.
type Profile struct {
	// Burst is the number of back-to-back calls in the burst phase.
	Burst int

	// Pause separates the burst phase from the steady phase.
	Pause time.Duration

	// Steady is the number of calls in the steady phase.
	Steady int

	// SteadyRate paces the steady phase in calls per second.
	// Zero or negative means unpaced.
	SteadyRate float64
}

// Report tallies admission decisions per phase.
type Report struct {
	BurstAllowed  int
	BurstDenied   int
	SteadyAllowed int
	SteadyDenied  int
}

// Allowed returns the total number of allowed calls across both phases.
func (r Report) Allowed() int {
	return r.BurstAllowed + r.SteadyAllowed
}

// Denied returns the total number of denied calls across both phases.
func (r Report) Denied() int {
	return r.BurstDenied + r.SteadyDenied
}

// Run drives the profile through the limiter and tallies the decisions.
// It returns early with the context error if the context ends between
// calls; the partial report reflects the calls made up to that point.
func Run(ctx context.Context, lim Limiter, profile Profile) (Report, error) {
	var report Report

	for i := 0; i < profile.Burst; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if lim.Allow() {
			report.BurstAllowed++
		} else {
			report.BurstDenied++
		}
	}

	if profile.Pause > 0 {
		timer := time.NewTimer(profile.Pause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return report, ctx.Err()
		case <-timer.C:
		}
	}

	var pacer *rate.Limiter
	if profile.SteadyRate > 0 {
		pacer = rate.NewLimiter(rate.Limit(profile.SteadyRate), 1)
	}

	for i := 0; i < profile.Steady; i++ {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return report, err
			}
		} else if err := ctx.Err(); err != nil {
			return report, err
		}
		if lim.Allow() {
			report.SteadyAllowed++
		} else {
			report.SteadyDenied++
		}
	}

	return report, nil
}

// Comparison holds both algorithms' reports for one profile.
type Comparison struct {
	TokenBucket Report
	LeakyBucket Report
}

// Compare runs the same profile through a token bucket limiter and a
// leaky bucket limiter, one after the other, and returns both reports.
func Compare(ctx context.Context, token, leaky Limiter, profile Profile) (Comparison, error) {
	tokenReport, err := Run(ctx, token, profile)
	if err != nil {
		return Comparison{}, err
	}

	leakyReport, err := Run(ctx, leaky, profile)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		TokenBucket: tokenReport,
		LeakyBucket: leakyReport,
	}, nil
}
