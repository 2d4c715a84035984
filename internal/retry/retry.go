// Package retry ограниченный повтор операций с экспоненциальной задержкой.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// ErrExhausted все попытки исчерпаны
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy параметры повтора
type Policy struct {
	Initial  time.Duration // задержка после первой неудачи, далее удваивается
	Attempts int           // общее число попыток, включая первую
}

// Default returns 3 attempts with 100ms, 200ms backoff
func Default() Policy {
	return Policy{Attempts: 3, Initial: 100 * time.Millisecond}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error that must not be retried
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a permanent error, ctx is done or
// attempts run out. Exhaustion is reported as ErrExhausted wrapping the last error.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	backoff := goretry.WithMaxRetries(uint64(p.Attempts-1), goretry.NewExponential(p.Initial))

	attempts := 0
	var last error
	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		err := fn(ctx)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		last = err
		return goretry.RetryableError(err)
	})

	switch {
	case err == nil:
		return nil
	case last != nil && errors.Is(err, last) && attempts >= p.Attempts:
		return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, err)
	default:
		return err
	}
}
