package idtoken

import "github.com/golang-jwt/jwt/v5"

// Claims is the typed payload of an Apple identity token. Registered claims
// (iss, sub, aud, iat, exp) come from the embedded type; the rest are the
// Apple-specific claims documented for Sign in with Apple.
type Claims struct {
	jwt.RegisteredClaims

	Nonce          string           `json:"nonce,omitempty"`
	NonceSupported Boolish          `json:"nonce_supported,omitempty"`
	Email          string           `json:"email,omitempty"`
	EmailVerified  Boolish          `json:"email_verified,omitempty"`
	IsPrivateEmail Boolish          `json:"is_private_email,omitempty"`
	RealUserStatus int              `json:"real_user_status,omitempty"`
	AuthTime       *jwt.NumericDate `json:"auth_time,omitempty"`
	TransferSub    string           `json:"transfer_sub,omitempty"`
	CodeHash       string           `json:"c_hash,omitempty"`
	AccessHash     string           `json:"at_hash,omitempty"`
}

// Boolish absorbs Apple's inconsistent boolean encoding: the same claim
// arrives as JSON true in some tokens and as the string "true" in others.
// Anything other than those two values, including "false" and absence,
// decodes to false.
type Boolish bool

func (b *Boolish) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", `"true"`:
		*b = true
	default:
		*b = false
	}
	return nil
}
