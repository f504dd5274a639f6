// Package profile turns verified identity-token claims and Apple's one-time
// user payload into the normalized profile handed to the application.
//
// Apple sends the user's name exactly once, on the first authorization, as a
// JSON blob in the callback's user parameter. The blob is best-effort input:
// absent or undecodable data degrades to an empty name, never to a failed
// login. Identity claims, by contrast, are already verified by the time they
// reach this package.
package profile
