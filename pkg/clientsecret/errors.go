package clientsecret

import "errors"

var (
	ErrMissingConfig     = errors.New("clientsecret: missing team, client, or key id")
	ErrInvalidPrivateKey = errors.New("clientsecret: invalid private key")
	ErrSigningFailed     = errors.New("clientsecret: signing failed")
)
