package backoff

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

var MaxRetries uint64 = 5

// RetryGeneral retries op with exponential backoff until it succeeds,
// MaxRetries is reached or the context is done.
func RetryGeneral(ctx context.Context, op backoff.Operation) (err error) {
	b := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(),
			MaxRetries),
		ctx)

	return backoff.RetryNotify(op, b, func(err error, next time.Duration) {
		logrus.WithError(err).Warnf("operation failed, retrying in %s", next)
	})
}
