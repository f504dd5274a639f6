// Package appleauth implements server-side Sign in with Apple for Go web
// applications.
//
// Apple's flavor of OAuth2/OIDC differs from other providers in ways that are
// easy to get wrong: the callback arrives as a cross-site form POST without
// cookies, the client secret is a short-lived ES256 assertion instead of a
// static string, the user's name is delivered exactly once outside the
// identity token, and nonce verification depends on a nonce_supported claim.
// This package absorbs those differences behind a small adapter API.
//
// Key Features:
//
//   - form_post callback normalization into a cookie-carrying GET
//   - Nonce lifecycle in session, param, or ignore mode
//   - ES256 client-secret assertions minted per token request
//   - Cached Apple signing keys with refetch on unknown key ids
//   - Strict identity-token verification with classified failures
//   - Normalized profile with the one-time name payload folded in
//
// Basic Usage:
//
//	cfg := appleauth.Config{
//		ClientID:    "com.example.web",
//		TeamID:      "TEAM123456",
//		KeyID:       "KEY1234567",
//		PrivateKey:  privateKeyPEM,
//		RedirectURI: "https://example.com/auth/apple/callback",
//	}
//
//	adapter, err := appleauth.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	handler := appleauth.NewHandler(adapter, nil,
//		appleauth.WithSuccessHandler(func(w http.ResponseWriter, r *http.Request, id *appleauth.Identity) {
//			// establish the application's own signed-in state
//			fmt.Fprintf(w, "welcome %s", id.Profile.Name)
//		}),
//	)
//	http.Handle("/auth/apple/", http.StripPrefix("/auth/apple", handler.Handle()))
//
// Configuration may also come from the environment (APPLE_CLIENT_ID,
// APPLE_TEAM_ID, APPLE_KEY_ID, APPLE_PRIVATE_KEY and friends) via the config
// package.
//
// Without the bundled Handler, drive the Adapter directly: build the
// authorize URL with AuthorizeURL, normalize the form POST with
// NormalizeCallback, then finish with HandleCallback. Every failure is an
// *Error whose Kind distinguishes configuration problems from rejected
// logins:
//
//	identity, err := adapter.HandleCallback(ctx, appleauth.NewHTTPRequest(r, sess))
//	if err != nil {
//		var authErr *appleauth.Error
//		if errors.As(err, &authErr) && authErr.Kind == appleauth.KindConfiguration {
//			// operator problem, not a bad login
//		}
//		return err
//	}
package appleauth
