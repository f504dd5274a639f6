// Package session keeps the server-side state a browser login flow needs
// between the authorize redirect and the provider callback: the OAuth2 state
// value and the pending nonce, stored as plain string key/values.
//
// The package is storage-agnostic: any datastore that satisfies the Store
// interface can be plugged in. A concurrent in-memory implementation and a
// Redis-backed one ship out of the box. Session tokens travel through the
// Transport interface; the default transport is an HttpOnly SameSite=Lax
// cookie. Lax matters here: Apple's form_post callback is a cross-site POST
// that carries no cookies, and the flow only works because the adapter turns
// that POST into a top-level GET redirect, which Lax cookies accompany.
//
// # Usage
//
//	manager := session.New(
//		session.WithTTL(15*time.Minute),
//	)
//
//	func login(w http.ResponseWriter, r *http.Request) {
//		// Ensure returns an existing session or creates a new one,
//		// setting the cookie on creation.
//		sess, err := manager.Ensure(r.Context(), w, r)
//		if err != nil {
//			http.Error(w, "session error", http.StatusInternalServerError)
//			return
//		}
//		sess.Set("appleauth.state", state)
//		_ = manager.Save(r.Context(), sess)
//	}
//
//	func callback(w http.ResponseWriter, r *http.Request) {
//		// Get never issues cookies; the POST normalization leg must not.
//		sess, err := manager.Get(r.Context(), r)
//		...
//	}
//
// Redis-backed sessions for multi-instance deployments:
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.New(
//		session.WithStore(session.NewRedisStore(client)),
//	)
//
// # Error Handling
//
// Common error values returned by the package:
//
//   - ErrSessionNotFound – no session associated with the token
//   - ErrSessionExpired  – session has passed its expiry
//   - ErrInvalidSession  – session is missing required fields
package session
