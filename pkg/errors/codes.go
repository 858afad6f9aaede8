package errors

// Error codes for categorizing errors.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeCancelled indicates the operation was cancelled.
	CodeCancelled = "CANCELLED"

	// CodeUnknown indicates an unknown error occurred.
	CodeUnknown = "UNKNOWN"

	// CodeNotFound indicates a resource was not found.
	CodeNotFound = "NOT_FOUND"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// CodeUnavailable indicates the service is currently unavailable.
	CodeUnavailable = "UNAVAILABLE"

	// Domain-specific error codes

	// CodeValidation indicates input validation failed.
	CodeValidation = "VALIDATION_ERROR"

	// CodeTimeout indicates an operation timed out.
	CodeTimeout = "TIMEOUT"

	// CodeStorageError indicates a storage operation failed.
	CodeStorageError = "STORAGE_ERROR"

	// CodeBackendInit indicates a storage backend failed to initialize.
	CodeBackendInit = "BACKEND_INIT_ERROR"

	// CodeNetworkError indicates a network operation failed.
	CodeNetworkError = "NETWORK_ERROR"

	// CodeCryptoError indicates a cryptographic operation failed.
	CodeCryptoError = "CRYPTO_ERROR"

	// CodeCredentialError indicates decryption credential generation failed.
	CodeCredentialError = "CREDENTIAL_ERROR"

	// CodeSerializationError indicates serialization/deserialization failed.
	CodeSerializationError = "SERIALIZATION_ERROR"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"
)

// ErrorCategory represents a high-level error category.
type ErrorCategory string

const (
	// CategoryClient indicates a client-side error (4xx).
	CategoryClient ErrorCategory = "CLIENT_ERROR"

	// CategoryServer indicates a server-side error (5xx).
	CategoryServer ErrorCategory = "SERVER_ERROR"

	// CategoryNetwork indicates a network-related error.
	CategoryNetwork ErrorCategory = "NETWORK_ERROR"

	// CategoryTimeout indicates a timeout error.
	CategoryTimeout ErrorCategory = "TIMEOUT_ERROR"
)

// GetCategory returns the category for an error code.
func GetCategory(code string) ErrorCategory {
	switch code {
	case CodeValidation, CodeNotFound:
		return CategoryClient

	case CodeTimeout, CodeCancelled:
		return CategoryTimeout

	case CodeNetworkError, CodeUnavailable:
		return CategoryNetwork

	default:
		return CategoryServer
	}
}

// IsRetryable returns true if an error with the given code should be retried.
// Validation and credential errors are deterministic and never retried. The
// retry orchestrator itself treats every error the same; this is a hint for
// callers deciding whether a failed operation is worth wrapping in a retry
// at all.
func IsRetryable(code string) bool {
	switch code {
	case CodeTimeout, CodeUnavailable,
		CodeNetworkError, CodeStorageError,
		CodeBackendInit:
		return true
	default:
		return false
	}
}

// IsClientError returns true if the error is a client error (4xx).
func IsClientError(code string) bool {
	return GetCategory(code) == CategoryClient
}

// IsServerError returns true if the error is a server error (5xx).
func IsServerError(code string) bool {
	return GetCategory(code) == CategoryServer
}
