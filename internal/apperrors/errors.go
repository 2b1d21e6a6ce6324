package apperrors

import "errors"

// Remote rate source errors describe why a fetch did not produce a record set.
var (
	// ErrNetwork indicates a connectivity failure or timeout while calling the rate provider.
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates the provider returned a body that could not be decoded.
	ErrDecode = errors.New("decode error")

	// ErrUnexpectedStatus indicates the provider answered with a non-200 status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrAPIKeyMissing indicates no API key is configured or stored.
	ErrAPIKeyMissing = errors.New("currency API key not configured")

	// ErrUnspecified is the catch-all for failures that fit no other category.
	ErrUnspecified = errors.New("unspecified error")
)

// Domain errors represent missing or invalid data.
var (
	// ErrCurrencyNotFound indicates a selection code is absent from the cached record set.
	ErrCurrencyNotFound = errors.New("unable to find")

	// ErrInvalidCurrencyCode indicates a code that is not three upper-case letters.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrInvalidTimestamp indicates a provider timestamp that is not ISO-8601.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidAmount indicates an amount that is not a finite non-negative number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrSelectionNotResolved indicates source or target is not resolved to a cached record.
	ErrSelectionNotResolved = errors.New("selection not resolved")

	// ErrInvalidRequestBody indicates a request body that is not the expected JSON document.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidQueryParam indicates a query parameter with an unusable value.
	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrZeroRate indicates a source currency whose rate value is zero.
	ErrZeroRate = errors.New("source rate is zero")
)

// Secret handling errors.
var (
	// ErrEncryptionKeyMissing indicates an operation needs ENCRYPTION_KEY but none is set.
	ErrEncryptionKeyMissing = errors.New("encryption key not configured")

	// ErrDecryptFailed indicates a stored secret could not be verified with the current key.
	ErrDecryptFailed = errors.New("failed to decrypt stored secret")
)

// Operation failure errors are returned to HTTP clients.
var (
	ErrFailedToSaveSelection = errors.New("failed to save selection")
	ErrFailedToSaveAPIKey    = errors.New("failed to save API key")
	ErrFailedToConvert       = errors.New("failed to convert amount")
	ErrFailedToGetVersion    = errors.New("failed to get version information")
)
