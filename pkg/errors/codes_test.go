package errors

import "testing"

func TestGetCategory(t *testing.T) {
	tests := []struct {
		code             string
		expectedCategory ErrorCategory
	}{
		// Client errors
		{CodeValidation, CategoryClient},
		{CodeNotFound, CategoryClient},

		// Timeout errors
		{CodeTimeout, CategoryTimeout},
		{CodeCancelled, CategoryTimeout},

		// Network errors
		{CodeNetworkError, CategoryNetwork},
		{CodeUnavailable, CategoryNetwork},

		// Server errors
		{CodeInternal, CategoryServer},
		{CodeUnknown, CategoryServer},
		{CodeStorageError, CategoryServer},
		{CodeBackendInit, CategoryServer},
		{CodeCryptoError, CategoryServer},
		{CodeCredentialError, CategoryServer},
		{CodeSerializationError, CategoryServer},
		{CodeConfigError, CategoryServer},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			category := GetCategory(tt.code)
			if category != tt.expectedCategory {
				t.Errorf("Code %s: expected category %s, got %s", tt.code, tt.expectedCategory, category)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		// Retryable errors
		{CodeTimeout, true},
		{CodeUnavailable, true},
		{CodeNetworkError, true},
		{CodeStorageError, true},
		{CodeBackendInit, true},

		// Non-retryable errors
		{CodeValidation, false},
		{CodeNotFound, false},
		{CodeInternal, false},
		{CodeCryptoError, false},
		{CodeCredentialError, false},
		{CodeConfigError, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := IsRetryable(tt.code)
			if result != tt.expected {
				t.Errorf("Code %s: expected retryable=%v, got %v", tt.code, tt.expected, result)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{CodeValidation, true},
		{CodeNotFound, true},
		{CodeInternal, false},
		{CodeTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := IsClientError(tt.code)
			if result != tt.expected {
				t.Errorf("Code %s: expected client error=%v, got %v", tt.code, tt.expected, result)
			}
		})
	}
}

func TestErrorCategoryConsistency(t *testing.T) {
	allCodes := []string{
		CodeOK, CodeCancelled, CodeUnknown, CodeNotFound,
		CodeInternal, CodeUnavailable, CodeValidation, CodeTimeout,
		CodeStorageError, CodeBackendInit, CodeNetworkError,
		CodeCryptoError, CodeCredentialError, CodeSerializationError,
		CodeConfigError,
	}

	for _, code := range allCodes {
		t.Run(code, func(t *testing.T) {
			if IsClientError(code) && IsServerError(code) {
				t.Errorf("Code %s is both client and server error", code)
			}

			category := GetCategory(code)
			validCategories := []ErrorCategory{
				CategoryClient, CategoryServer, CategoryNetwork, CategoryTimeout,
			}

			found := false
			for _, valid := range validCategories {
				if category == valid {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Code %s has invalid category: %s", code, category)
			}
		})
	}
}
