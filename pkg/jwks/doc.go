// Package jwks fetches and caches the identity provider's public signing
// keys, indexed by key id (kid). Keys are required to verify identity-token
// signatures; the provider rotates them without notice, so the set is
// refetched whenever an unknown kid shows up.
//
// Cache entries never expire on their own. A lookup miss triggers a full
// refetch of the published key set and a swap of the whole index, which keeps
// the cache safe for concurrent callback handlers: readers either see the old
// complete index or the new complete index, never a partial one. Two handlers
// missing on the same kid may both fetch; the last writer wins.
//
// # Usage
//
//	keys := jwks.New("https://appleid.apple.com")
//
//	key, err := keys.Fetch(ctx, kid)
//	if err != nil {
//	    // transport failure, malformed key set, or unknown kid
//	}
//
// The returned *rsa.PublicKey plugs directly into a JWT verification step.
package jwks
