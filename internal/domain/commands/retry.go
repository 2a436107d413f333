package commands

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	logger "github.com/sirupsen/logrus"
)

// RetryPolicy bounds a create-with-uniqueness operation.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// CreateWithRetry calls create with a freshly generated identifier until it
// succeeds or the attempts are exhausted, waiting a constant delay between
// attempts. It returns the identifier that was accepted and the number of
// attempts made; on failure the last error is returned.
func CreateWithRetry(
	ctx context.Context,
	policy RetryPolicy,
	generate func() string,
	create func(ctx context.Context, id string) error,
) (string, int, error) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var accepted string
	attempts := 0
	operation := func() error {
		attempts++
		candidate := generate()
		if err := create(ctx, candidate); err != nil {
			logger.Warnf("Attempt %d/%d with %q failed: %v", attempts, maxAttempts, candidate, err)
			return err
		}
		accepted = candidate
		return nil
	}

	policyBackOff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.Delay), uint64(maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policyBackOff); err != nil {
		return "", attempts, err
	}
	return accepted, attempts, nil
}
