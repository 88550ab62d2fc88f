package consensus

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/model"
	"github.com/goodnatureofminers/blocktree/internal/clock"
	"go.uber.org/zap"
)

// Retrying re-asks the wrapped approver when it fails to answer. Answers,
// approvals and rejections alike, are returned as is.
type Retrying struct {
	next     Approver
	attempts int
	backoff  time.Duration
	sleep    func(context.Context, time.Duration) error
	logger   *zap.Logger
}

// NewRetrying wraps next with at most attempts tries and a linear backoff.
func NewRetrying(next Approver, attempts int, backoff time.Duration, logger *zap.Logger) *Retrying {
	if attempts <= 0 {
		attempts = 1
	}
	return &Retrying{
		next:     next,
		attempts: attempts,
		backoff:  backoff,
		sleep:    clock.SleepWithContext,
		logger:   logger,
	}
}

// Approve implements Approver.
func (r *Retrying) Approve(ctx context.Context, c model.CandidateBlock) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		ok, err := r.next.Approve(ctx, c)
		if err == nil {
			return ok, nil
		}
		lastErr = err
		if attempt == r.attempts {
			break
		}

		wait := r.backoff * time.Duration(attempt)
		r.logger.Warn("approval attempt failed, backing off",
			zap.String("id", c.ID),
			zap.Int("attempt", attempt),
			zap.Duration("sleep", wait),
			zap.Error(err),
		)
		if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
			return false, sleepErr
		}
	}
	return false, fmt.Errorf("approval failed after %d attempts: %w", r.attempts, lastErr)
}
