package resolve

import (
    "context"
    "time"
)

// RetryPolicy is a bounded-attempt policy: a fixed number of sequential
// attempts, each under its own fresh deadline, with no backoff between them.
type RetryPolicy struct {
    MaxAttempts    int
    AttemptTimeout time.Duration
}

// DefaultRetry matches the primary provider contract: two attempts, five
// seconds each.
func DefaultRetry() RetryPolicy {
    return RetryPolicy{MaxAttempts: 2, AttemptTimeout: 5 * time.Second}
}

// Do runs fn up to MaxAttempts times, stopping at the first success.
// Every attempt is independent and stateless; the last error is returned
// when all attempts fail.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
    attempts := p.MaxAttempts
    if attempts <= 0 { attempts = 1 }
    var lastErr error
    for i := 0; i < attempts; i++ {
        attemptCtx := ctx
        cancel := context.CancelFunc(func() {})
        if p.AttemptTimeout > 0 {
            attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
        }
        err := fn(attemptCtx)
        cancel()
        if err == nil {
            return nil
        }
        lastErr = err
    }
    return lastErr
}
