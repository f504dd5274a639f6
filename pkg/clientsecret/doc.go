// Package clientsecret mints the short-lived signed assertion Apple expects
// in place of a static OAuth2 client secret.
//
// Apple does not issue client secrets. Instead the relying party signs a JWT
// with its developer key (ES256) and presents that as the secret on every
// token-endpoint call. The assertion carries the team id as issuer, the
// services id as subject, the identity provider as audience, and is valid for
// sixty seconds from issuance. Assertions are minted fresh per exchange and
// never reused.
//
// # Usage
//
//	issuer, err := clientsecret.New(clientsecret.Config{
//	    TeamID:     "TEAM123456",
//	    ClientID:   "com.example.service",
//	    KeyID:      "KEY1234567",
//	    PrivateKey: pemString, // contents of the .p8 developer key
//	})
//	if err != nil {
//	    // malformed or non-EC key material
//	}
//
//	secret, err := issuer.Issue()
package clientsecret
