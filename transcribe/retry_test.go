package transcribe

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := policy.Run("job", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRecoversAfterFailures(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

	calls := 0
	err := policy.Run("job", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond}

	calls := 0
	err := policy.Run("transcription", func() error {
		calls++
		return errors.New("model not found")
	})
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error should mention the attempt count: %v", err)
	}
}
