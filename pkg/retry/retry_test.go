package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// recordSleep captures requested delays instead of sleeping.
func recordSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func fixedRand(v float64) func() float64 {
	return func() float64 { return v }
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	policy := Policy{MaxRetries: 3, InitialDelay: 100 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: time.Second}

	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls <= 3 {
			return "", fmt.Errorf("transient %d", calls)
		}
		return "ok", nil
	}

	var delays []time.Duration
	result, err := run(context.Background(), policy, op, nil, recordSleep(&delays), fixedRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if result != "ok" {
		t.Fatalf("expected ok, got %q", result)
	}
	if calls != 4 {
		t.Fatalf("expected 4 attempts, got %d", calls)
	}

	// Pre-jitter geometric growth: 100ms, 200ms, 400ms.
	expected := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if len(delays) != len(expected) {
		t.Fatalf("expected %d sleeps, got %d", len(expected), len(delays))
	}
	for i := range expected {
		if delays[i] != expected[i] {
			t.Errorf("delay %d: expected %v, got %v", i, expected[i], delays[i])
		}
	}
}

func TestDoExhaustionPropagatesLastError(t *testing.T) {
	policy := Policy{MaxRetries: 2, InitialDelay: 10 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: time.Second}

	lastErr := errors.New("insufficient funds")
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, fmt.Errorf("earlier failure %d", calls)
		}
		return 0, lastErr
	}

	var delays []time.Duration
	_, err := run(context.Background(), policy, op, nil, recordSleep(&delays), fixedRand(1))
	if calls != 3 {
		t.Fatalf("expected exactly maxRetries+1 = 3 attempts, got %d", calls)
	}
	// The final error must be the identical value, not wrapped.
	if err != lastErr {
		t.Fatalf("expected last error propagated unchanged, got %v", err)
	}
}

func TestDoZeroRetriesRunsOnce(t *testing.T) {
	policy := Policy{MaxRetries: 0, InitialDelay: 10 * time.Millisecond, BackoffMultiplier: 2}

	calls := 0
	boom := errors.New("boom")
	_, err := run(context.Background(), policy, func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	}, nil, recordSleep(&[]time.Duration{}), fixedRand(1))

	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
	if err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestDelayCap(t *testing.T) {
	policy := Policy{MaxRetries: 10, InitialDelay: 100 * time.Millisecond, BackoffMultiplier: 2, MaxDelay: 300 * time.Millisecond}

	if d := policy.delay(0, fixedRand(1)); d != 100*time.Millisecond {
		t.Errorf("attempt 0: expected 100ms, got %v", d)
	}
	if d := policy.delay(1, fixedRand(1)); d != 200*time.Millisecond {
		t.Errorf("attempt 1: expected 200ms, got %v", d)
	}
	if d := policy.delay(5, fixedRand(1)); d != 300*time.Millisecond {
		t.Errorf("attempt 5: expected cap 300ms, got %v", d)
	}
}

func TestDelayJitterRange(t *testing.T) {
	policy := ReceiptPolicy()

	base := policy.delay(0, fixedRand(1))
	for i := 0; i < 100; i++ {
		d := policy.delay(0, func() float64 { return float64(i) / 100 })
		if d < base/2 || d > base {
			t.Fatalf("jittered delay %v outside [%v, %v]", d, base/2, base)
		}
	}
}

func TestDoContextCancelledWhileSleeping(t *testing.T) {
	policy := Policy{MaxRetries: 5, InitialDelay: time.Hour, BackoffMultiplier: 2}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	}

	_, err := Do(ctx, policy, op)
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNamedPolicies(t *testing.T) {
	tests := []struct {
		name       string
		policy     Policy
		maxRetries int
		initial    time.Duration
		multiplier float64
		maxDelay   time.Duration
	}{
		{"receipt", ReceiptPolicy(), 30, 1000 * time.Millisecond, 1.3, 5000 * time.Millisecond},
		{"network", NetworkPolicy(), 5, 500 * time.Millisecond, 2.0, 3000 * time.Millisecond},
		{"crypto", CryptoPolicy(), 3, 300 * time.Millisecond, 1.5, 1000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.policy
			if p.MaxRetries != tt.maxRetries || p.InitialDelay != tt.initial ||
				p.BackoffMultiplier != tt.multiplier || p.MaxDelay != tt.maxDelay {
				t.Fatalf("unexpected policy: %+v", p)
			}
			if !p.Jitter {
				t.Fatal("named policies must enable jitter")
			}
		})
	}
}

func TestDoWithProgressReportsPhases(t *testing.T) {
	policy := Policy{MaxRetries: 2, InitialDelay: 10 * time.Millisecond, BackoffMultiplier: 2}

	var updates []Progress
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}

	result, err := run(context.Background(), policy, op, func(p Progress) {
		updates = append(updates, p)
	}, recordSleep(&[]time.Duration{}), fixedRand(1))
	if err != nil || result != "ok" {
		t.Fatalf("unexpected result: %q, %v", result, err)
	}

	statuses := make([]string, len(updates))
	for i, u := range updates {
		statuses[i] = u.Status
	}

	expected := []string{"Attempt 1/3", "Retrying in 0.0s...", "Attempt 2/3", "Success", "Success"}
	if len(statuses) != len(expected) {
		t.Fatalf("expected %d updates, got %d: %v", len(expected), len(statuses), statuses)
	}
	for i := range expected {
		if statuses[i] != expected[i] {
			t.Errorf("update %d: expected %q, got %q", i, expected[i], statuses[i])
		}
	}

	// The final update must clear the in-progress flag.
	last := updates[len(updates)-1]
	if last.InProgress {
		t.Fatal("expected final update to clear InProgress")
	}
	if updates[0].MaxAttempts != 3 || updates[0].Attempt != 1 {
		t.Fatalf("unexpected first update: %+v", updates[0])
	}
}

func TestDoWithProgressClearsFlagOnExhaustion(t *testing.T) {
	policy := Policy{MaxRetries: 1, InitialDelay: 10 * time.Millisecond, BackoffMultiplier: 2}

	var last Progress
	_, err := run(context.Background(), policy, func(ctx context.Context) (int, error) {
		return 0, errors.New("always fails")
	}, func(p Progress) { last = p }, recordSleep(&[]time.Duration{}), fixedRand(1))

	if err == nil {
		t.Fatal("expected error")
	}
	if last.InProgress {
		t.Fatal("expected InProgress cleared after exhaustion")
	}
	if last.Status != "Failed" {
		t.Fatalf("expected Failed status, got %q", last.Status)
	}
}
