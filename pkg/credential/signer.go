package credential

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// LocalSigner signs EIP-712 typed data with a raw secp256k1 key. It stands
// in for a browser wallet in tests and server-side callers that hold their
// own key.
type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalSigner creates a signer from a hex-encoded private key.
func NewLocalSigner(privateKeyHex string) (*LocalSigner, error) {
	keyHex := strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &LocalSigner{
		key:     key,
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// GenerateLocalSigner creates a signer with a fresh random key.
func GenerateLocalSigner() (*LocalSigner, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return &LocalSigner{
		key:     key,
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// SignTypedData hashes the typed data per EIP-712 and signs the digest.
// V is normalized to 27/28 to match wallet output.
func (s *LocalSigner) SignTypedData(data apitypes.TypedData) (string, error) {
	hash, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return "", fmt.Errorf("failed to hash typed data: %w", err)
	}

	sig, err := ethcrypto.Sign(hash, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign typed data: %w", err)
	}

	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// Address returns the signer's checksummed address.
func (s *LocalSigner) Address() string {
	return s.address.Hex()
}
