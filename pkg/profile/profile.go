package profile

import (
	"encoding/json"
	"strings"

	"github.com/dmitrymomot/appleauth/pkg/idtoken"
)

// Profile is the normalized identity returned after a successful login.
// Empty fields are omitted from the JSON form.
type Profile struct {
	Sub            string `json:"sub,omitempty"`
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Name           string `json:"name,omitempty"`
	EmailVerified  bool   `json:"email_verified,omitempty"`
	IsPrivateEmail bool   `json:"is_private_email,omitempty"`
}

// UserPayload is the shape of the user parameter Apple posts along with the
// first authorization for an account.
type UserPayload struct {
	Name struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"name"`
	Email string `json:"email,omitempty"`
}

// ParseUserPayload decodes the one-time user parameter. Absent or
// undecodable input yields the zero payload.
func ParseUserPayload(raw string) UserPayload {
	if raw == "" {
		return UserPayload{}
	}
	var payload UserPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return UserPayload{}
	}
	return payload
}

// Assemble builds the profile from verified claims and the user payload.
// The display name joins the non-empty name parts and falls back to the
// email address when Apple sent no name at all.
func Assemble(claims *idtoken.Claims, user UserPayload) Profile {
	p := Profile{
		Sub:            claims.Subject,
		Email:          claims.Email,
		FirstName:      user.Name.FirstName,
		LastName:       user.Name.LastName,
		EmailVerified:  bool(claims.EmailVerified),
		IsPrivateEmail: bool(claims.IsPrivateEmail),
	}
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		p.Name = name
	} else {
		p.Name = p.Email
	}
	return p
}
