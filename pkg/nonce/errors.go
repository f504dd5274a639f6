package nonce

import "errors"

var (
	ErrInvalidMode = errors.New("nonce: invalid mode")
	ErrNoSession   = errors.New("nonce: session store required in session mode")
)
