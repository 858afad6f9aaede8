package storage

import (
	"github.com/DeBrosOfficial/fheclient/pkg/errors"
)

// validateKey rejects malformed keys before they reach a backend. The value
// side of the contract (string-only) is carried by the type system.
func validateKey(key string) error {
	if key == "" {
		return errors.NewValidationError("key", "key must be a non-empty string", key)
	}
	return nil
}
