package commands

import (
	"context"
	"errors"
	"time"

	"foodfast/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts   = 5
	DefaultRetryInterval = 20 * time.Millisecond
)

// RetryPolicy re-runs a whole lifecycle decision when its transaction lost a
// race: a stale order version, a drone claimed by someone else, or a
// serialization failure reported by the store. Every other error is returned
// after the first attempt.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultRetryInterval,
	}
}

// Run calls attempt until it succeeds, fails with a non-conflict error, the
// attempts are exhausted, or ctx is done. The last error is returned.
func (p RetryPolicy) Run(ctx context.Context, attempt func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	exp.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxAttempts-1)), ctx)

	return backoff.Retry(func() error {
		err := attempt(ctx)
		if err == nil || IsConflict(err) {
			return err
		}
		return backoff.Permanent(err)
	}, policy)
}

// IsConflict reports whether err means the decision raced with another writer.
func IsConflict(err error) bool {
	return errors.Is(err, errs.ErrVersionConflict)
}
