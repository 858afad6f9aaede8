package retry

import "time"

// ReceiptPolicy is tuned for transaction-receipt polling, where block
// confirmation latency has a long tail of up to minutes.
func ReceiptPolicy() Policy {
	return Policy{
		MaxRetries:        30,
		InitialDelay:      1000 * time.Millisecond,
		BackoffMultiplier: 1.3,
		MaxDelay:          5000 * time.Millisecond,
		Jitter:            true,
	}
}

// NetworkPolicy is tuned for generic network calls: fast-fail for typical
// HTTP flakiness.
func NetworkPolicy() Policy {
	return Policy{
		MaxRetries:        5,
		InitialDelay:      500 * time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxDelay:          3000 * time.Millisecond,
		Jitter:            true,
	}
}

// CryptoPolicy is tuned for cryptographic operations, whose failures are
// usually deterministic and not worth many retries.
func CryptoPolicy() Policy {
	return Policy{
		MaxRetries:        3,
		InitialDelay:      300 * time.Millisecond,
		BackoffMultiplier: 1.5,
		MaxDelay:          1000 * time.Millisecond,
		Jitter:            true,
	}
}
