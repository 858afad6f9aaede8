// Package credential caches the signed, time-bounded decryption credential
// used to talk to the FHE decryption service, so callers do not prompt the
// wallet for a fresh signature on every request.
package credential

import (
	"time"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// DefaultDurationDays is the validity window of freshly generated
// credentials.
const DefaultDurationDays = 365

// Keypair is the asymmetric keypair the FHE instance generates for
// re-encryption. Keys are hex encoded.
type Keypair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// KeypairGenerator is the credential-issuing collaborator, implemented by
// the FHE instance. The instance itself is opaque to this package.
type KeypairGenerator interface {
	// GenerateKeypair returns a fresh re-encryption keypair.
	GenerateKeypair() (Keypair, error)

	// CreateSigningPayload builds the EIP-712 typed data authorizing
	// publicKey for the given contracts from startTimestamp for
	// durationDays.
	CreateSigningPayload(publicKey string, contractAddresses []string, startTimestamp, durationDays int64) (apitypes.TypedData, error)
}

// TypedDataSigner is the wallet collaborator producing EIP-712 signatures.
type TypedDataSigner interface {
	// SignTypedData signs the typed data and returns the 65-byte
	// signature hex encoded with 0x prefix.
	SignTypedData(data apitypes.TypedData) (string, error)

	// Address returns the signer's checksummed address.
	Address() string
}

// DecryptionCredential authorizes decryption requests against the listed
// contracts. Replacement is always wholesale; a credential is never
// partially updated.
type DecryptionCredential struct {
	ID                string   `json:"id"`
	PublicKey         string   `json:"public_key"`
	PrivateKey        string   `json:"private_key"`
	Signature         string   `json:"signature"`
	ContractAddresses []string `json:"contract_addresses"`
	SignerAddress     string   `json:"signer_address"`
	StartTimestamp    int64    `json:"start_timestamp"`
	DurationDays      int64    `json:"duration_days"`
}

// ExpiresAt returns the instant the credential stops being valid.
func (c *DecryptionCredential) ExpiresAt() time.Time {
	return time.Unix(c.StartTimestamp+c.DurationDays*86400, 0)
}

// IsValidAt reports whether the credential is valid at t. Validity is
// monotonic: once expired it can never become valid again.
func (c *DecryptionCredential) IsValidAt(t time.Time) bool {
	if c == nil {
		return false
	}
	return t.Unix() < c.StartTimestamp+c.DurationDays*86400
}
