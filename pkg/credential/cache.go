package credential

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DeBrosOfficial/fheclient/pkg/errors"
	"github.com/DeBrosOfficial/fheclient/pkg/logging"
)

// Cache holds at most one decryption credential: one active signer, one
// session, most-recent-wins. Construct one per session instead of sharing
// package state so tests and multi-session callers stay independent.
type Cache struct {
	mu     sync.Mutex
	cred   *DecryptionCredential
	now    func() time.Time
	logger *logging.ColoredLogger
}

// NewCache creates an empty credential cache.
func NewCache(logger *logging.ColoredLogger) *Cache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Cache{now: time.Now, logger: logger}
}

// GetOrCreate returns the cached credential when it is still valid;
// otherwise it drives a full generation round trip (keypair, EIP-712
// payload, wallet signature) and caches the result.
//
// The mutex only guards the slot. The signing round trip deliberately runs
// outside it: two callers racing past an empty or expired slot will each
// sign independently and the last write wins. Both results are valid, so
// this costs a duplicate signature prompt, not correctness. Callers wanting
// single-flight de-duplication must layer it on top.
func (c *Cache) GetOrCreate(ctx context.Context, instance KeypairGenerator, signer TypedDataSigner, contractAddress string) (*DecryptionCredential, error) {
	cred, _, err := c.getOrCreate(ctx, instance, signer, contractAddress)
	return cred, err
}

// getOrCreate additionally reports whether a fresh credential was
// generated, for write-through persistence.
func (c *Cache) getOrCreate(ctx context.Context, instance KeypairGenerator, signer TypedDataSigner, contractAddress string) (*DecryptionCredential, bool, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, false, errors.NewValidationError("contractAddress", "must be a hex contract address", contractAddress)
	}

	c.mu.Lock()
	if c.cred.IsValidAt(c.now()) {
		cred := c.cred
		c.mu.Unlock()
		c.logger.ComponentDebug(logging.ComponentCredential, "credential cache hit",
			zap.String("id", cred.ID))
		return cred, false, nil
	}
	c.mu.Unlock()

	cred, err := c.generate(ctx, instance, signer, contractAddress)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	c.cred = cred
	c.mu.Unlock()

	c.logger.ComponentInfo(logging.ComponentCredential, "generated decryption credential",
		zap.String("id", cred.ID),
		zap.String("signer", cred.SignerAddress),
		zap.Int64("duration_days", cred.DurationDays))
	return cred, true, nil
}

// generate performs the full credential round trip. Failures are not
// retried here; a rejected wallet prompt is a caller decision.
func (c *Cache) generate(ctx context.Context, instance KeypairGenerator, signer TypedDataSigner, contractAddress string) (*DecryptionCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keypair, err := instance.GenerateKeypair()
	if err != nil {
		return nil, errors.NewCredentialError("keypair generation", err)
	}

	start := c.now().Unix()
	contracts := []string{contractAddress}

	payload, err := instance.CreateSigningPayload(keypair.PublicKey, contracts, start, DefaultDurationDays)
	if err != nil {
		return nil, errors.NewCredentialError("payload construction", err)
	}

	signature, err := signer.SignTypedData(payload)
	if err != nil {
		return nil, errors.NewCredentialError("signature", err)
	}

	return &DecryptionCredential{
		ID:                uuid.NewString(),
		PublicKey:         keypair.PublicKey,
		PrivateKey:        keypair.PrivateKey,
		Signature:         signature,
		ContractAddresses: contracts,
		SignerAddress:     signer.Address(),
		StartTimestamp:    start,
		DurationDays:      DefaultDurationDays,
	}, nil
}

// IsValid reports whether the credential is still inside its validity
// window. Pure check, no side effects.
func (c *Cache) IsValid(cred *DecryptionCredential) bool {
	return cred.IsValidAt(c.now())
}

// Clear resets the slot to empty. Used for session teardown and test
// isolation.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.cred = nil
	c.mu.Unlock()
}

// seed installs a credential loaded from persistent storage.
func (c *Cache) seed(cred *DecryptionCredential) {
	c.mu.Lock()
	c.cred = cred
	c.mu.Unlock()
}

// current returns the cached credential without validity checks.
func (c *Cache) current() *DecryptionCredential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}
