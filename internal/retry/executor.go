package retry

import (
	"context"
	"time"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

// Executor runs an operation again while it fails with transient errors.
//
// An Executor is immutable after construction and safe for concurrent use.
type Executor struct {
	classifier bookxmp.ErrorClassifier
	strategy   bookxmp.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor panics if classifier or strategy is nil.
func NewExecutor(classifier bookxmp.ErrorClassifier, strategy bookxmp.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls fn before each retry wait.
func (e *Executor) WithOnRetry(fn func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// WithLogger returns a copy of e that reports each retry through logger.
func (e *Executor) WithLogger(logger bookxmp.Logger, what string) *Executor {
	return e.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("%s failed (%v), retry %d in %v", what, err, attempt+1, delay.Round(time.Millisecond))
	})
}

// Execute calls op until it succeeds, fails with a non-transient error, the
// strategy runs out of attempts, or ctx is done. It returns the last error.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
