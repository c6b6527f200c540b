package generation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"brandkit/internal/infra"
	"brandkit/internal/metrics"
)

// StatusFetcher reads the current state of a provider job.
type StatusFetcher interface {
	Status(ctx context.Context, requestID string) (map[string]any, error)
}

// PollOptions bounds a single wait. Image jobs get a larger budget than text jobs.
type PollOptions struct {
	MaxAttempts int
	Interval    time.Duration
}

var (
	// DefaultTextPoll suits chat-style text models.
	DefaultTextPoll = PollOptions{MaxAttempts: 20, Interval: 1500 * time.Millisecond}
	// DefaultImagePoll suits image models, which are considerably slower.
	DefaultImagePoll = PollOptions{MaxAttempts: 120, Interval: 5 * time.Second}
)

// Poller repeatedly queries a job until it reaches a terminal status.
type Poller struct {
	fetcher StatusFetcher
	logger  *infra.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewPoller wires a poller around the provider status endpoint.
func NewPoller(fetcher StatusFetcher, logger *infra.Logger) *Poller {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Poller{fetcher: fetcher, logger: logger, sleep: sleepContext}
}

// Await polls jobID until success, failure, or exhaustion of the attempt budget.
// Fetch errors are retried like an in-progress status, except on the final
// attempt where the error is returned.
func (p *Poller) Await(ctx context.Context, jobID string, opts PollOptions) (map[string]any, error) {
	job := &Job{ID: jobID, Status: StatusPending}
	if err := p.run(ctx, job, opts); err != nil {
		return nil, err
	}
	return job.Raw, nil
}

func (p *Poller) run(ctx context.Context, job *Job, opts PollOptions) error {
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := p.fetcher.Status(ctx, job.ID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			metrics.PollAttempts.WithLabelValues("error").Inc()
			if attempt == attempts {
				return fmt.Errorf("poll job %s (attempt %d/%d): %w", job.ID, attempt, attempts, err)
			}
			p.logger.Debug().
				Err(err).
				Str("job_id", job.ID).
				Int("attempt", attempt).
				Msg("generation: status fetch failed, retrying")
		} else {
			status := statusOf(raw)
			job.advance(NormalizeStatus(status), raw)
			switch job.Status {
			case StatusSucceeded:
				metrics.PollAttempts.WithLabelValues("succeeded").Inc()
				p.logger.Debug().
					Str("job_id", job.ID).
					Int("attempt", attempt).
					Msg("generation: job finished")
				return nil
			case StatusFailed:
				metrics.PollAttempts.WithLabelValues("failed").Inc()
				return &ProviderFailureError{JobID: job.ID, Status: status, Raw: raw}
			}
			metrics.PollAttempts.WithLabelValues("pending").Inc()
		}
		if attempt == attempts {
			break
		}
		if err := p.sleep(ctx, opts.Interval); err != nil {
			return err
		}
	}
	return fmt.Errorf("job %s after %d attempts: %w", job.ID, attempts, ErrTimeout)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
