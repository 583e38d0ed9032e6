package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"

	"foody/domain/cart"
	"foody/domain/order"
)

func quickConfig() Config {
	config := DefaultConfig
	config.InitialDelay = time.Millisecond
	config.MaxDelay = 5 * time.Millisecond
	return config
}

func TestIsRetryableError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"cart version conflict", cart.NewConcurrentModificationError("c1"), true},
		{"order version conflict", order.NewConcurrentModificationError("o1"), true},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, true},
		{"mysql lock wait timeout", &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout"}, true},
		{"mysql duplicate key", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"domain error", order.NewOrderNotFoundError("o1"), false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err, DefaultConfig); got != tc.want {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsRetryableErrorRespectsToggles(t *testing.T) {
	config := DefaultConfig
	config.RetryOnConcurrentModification = false

	if IsRetryableError(cart.NewConcurrentModificationError("c1"), config) {
		t.Error("disabled concurrent-modification retry must not match")
	}
}

func TestIsRetryableErrorCustomPredicate(t *testing.T) {
	sentinel := errors.New("transient")
	config := DefaultConfig
	config.RetryPredicate = func(err error) bool { return errors.Is(err, sentinel) }

	if !IsRetryableError(sentinel, config) {
		t.Error("predicate match must be retryable")
	}
}

func TestExponentialBackoffBounds(t *testing.T) {
	config := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}

	if d := ExponentialBackoffWithJitter(0, config); d != 0 {
		t.Errorf("attempt 0 must not wait, got %v", d)
	}

	for attempt := 1; attempt <= 10; attempt++ {
		d := ExponentialBackoffWithJitter(attempt, config)
		// Jitter scales the delay by [0.8, 1.2]; the cap bounds the upper end.
		if d < 0 || d > time.Duration(float64(config.MaxDelay)*1.2) {
			t.Errorf("attempt %d: delay %v out of bounds", attempt, d)
		}
	}

	config.JitterEnabled = false
	if d := ExponentialBackoffWithJitter(2, config); d != 200*time.Millisecond {
		t.Errorf("attempt 2 without jitter: expected 200ms, got %v", d)
	}
}

func TestExecuteWithRetryRetriesConflicts(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), quickConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return cart.NewConcurrentModificationError("c1")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestExecuteWithRetryStopsOnNonRetryable(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), quickConfig(), func(ctx context.Context) error {
		attempts++
		return order.NewOrderNotFoundError("o1")
	})
	if !errors.Is(err, order.ErrOrderNotFound) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("non-retryable errors run once, got %d attempts", attempts)
	}
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := ExecuteWithRetry(context.Background(), quickConfig(), func(ctx context.Context) error {
		attempts++
		return order.NewConcurrentModificationError("o1")
	})
	if !errors.Is(err, order.ErrConcurrentModification) {
		t.Fatalf("expected the last conflict error, got %v", err)
	}
	if attempts != DefaultConfig.MaxAttempts {
		t.Errorf("expected %d attempts, got %d", DefaultConfig.MaxAttempts, attempts)
	}
}

func TestExecuteWithRetryDisabledRunsOnce(t *testing.T) {
	config := quickConfig()
	config.Enabled = false

	attempts := 0
	_ = ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return cart.NewConcurrentModificationError("c1")
	})
	if attempts != 1 {
		t.Errorf("disabled retry runs once, got %d attempts", attempts)
	}
}

func TestExecuteWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, quickConfig(), func(ctx context.Context) error {
		t.Fatal("fn must not run with a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
