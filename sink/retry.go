// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/dock-quiz/quiz"
)

// RetrySink calls next up to 1+retries times, waiting backoff between
// attempts. It blocks the caller until an attempt succeeds, attempts run
// out, or ctx is done.
type RetrySink struct {
	next    quiz.Sink
	retries int
	backoff time.Duration
}

func NewRetrySink(next quiz.Sink, retries int, backoff time.Duration) *RetrySink {
	if retries < 0 {
		retries = 0
	}
	return &RetrySink{next: next, retries: retries, backoff: backoff}
}

func (s *RetrySink) Submit(ctx context.Context, lead quiz.Lead) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying lead submission",
				"session_id", lead.SessionID,
				"attempt", attempt+1,
				"error", err,
			)
			timer := time.NewTimer(s.backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("gave up after %d attempts: %w", attempt, ctx.Err())
			case <-timer.C:
			}
		}

		if err = s.next.Submit(ctx, lead); err == nil {
			return nil
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", s.retries+1, err)
}
