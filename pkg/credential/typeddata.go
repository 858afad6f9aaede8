package credential

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// BuildTypedData constructs the EIP-712 payload a user signs to authorize
// publicKey for decryption against the listed contracts. KeypairGenerator
// implementations call this with their own chain id and verifying contract;
// wallets render the same structure, so field names and order are part of
// the wire contract and must not change.
func BuildTypedData(publicKey string, contractAddresses []string, startTimestamp, durationDays, chainID int64, verifyingContract string) apitypes.TypedData {
	contracts := make([]interface{}, 0, len(contractAddresses))
	for _, addr := range contractAddresses {
		contracts = append(contracts, addr)
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"UserDecryptRequestVerification": []apitypes.Type{
				{Name: "publicKey", Type: "bytes"},
				{Name: "contractAddresses", Type: "address[]"},
				{Name: "startTimestamp", Type: "uint256"},
				{Name: "durationDays", Type: "uint256"},
			},
		},
		PrimaryType: "UserDecryptRequestVerification",
		Domain: apitypes.TypedDataDomain{
			Name:              "Decryption",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: verifyingContract,
		},
		Message: apitypes.TypedDataMessage{
			"publicKey":         publicKey,
			"contractAddresses": contracts,
			"startTimestamp":    math.NewHexOrDecimal256(startTimestamp),
			"durationDays":      math.NewHexOrDecimal256(durationDays),
		},
	}
}
