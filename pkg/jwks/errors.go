package jwks

import "errors"

var (
	// ErrFetchFailed indicates the key set could not be retrieved from the provider
	ErrFetchFailed = errors.New("jwks: key set fetch failed")

	// ErrInvalidKeySet indicates the key set payload could not be parsed
	ErrInvalidKeySet = errors.New("jwks: invalid key set payload")

	// ErrKeyNotFound indicates the key set does not contain the requested kid
	ErrKeyNotFound = errors.New("jwks: no key for kid")
)
