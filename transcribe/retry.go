package transcribe

import (
	"fmt"
	"time"
)

// RetryPolicy retries a failing subprocess a fixed number of times with a
// fixed delay between attempts.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetry matches the configured defaults: three attempts, five
// seconds apart.
var DefaultRetry = RetryPolicy{MaxAttempts: 3, Backoff: 5 * time.Second}

// Run invokes fn until it succeeds or attempts are exhausted. The final
// error reports how many attempts were made.
func (p RetryPolicy) Run(desc string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts {
			fmt.Printf("%s failed (attempt %d/%d): %v, retrying in %s...\n",
				desc, attempt, attempts, err, p.Backoff)
			time.Sleep(p.Backoff)
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %v", desc, attempts, err)
}
