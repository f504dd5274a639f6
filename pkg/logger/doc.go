// Package logger builds configured slog loggers for the adapter and the
// applications embedding it.
//
// The factory supports JSON and text output, static attributes, and dynamic
// attributes extracted from context on every log call (request ids and the
// like). Attribute helpers keep field names consistent across the codebase:
// logins, token verifications, and key fetches all log the same keys.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "my-service"),
//	)
//
//	log.Info("authentication succeeded",
//		logger.Provider("apple"),
//		logger.UserID(profile.Sub),
//	)
//
// Context-scoped fields:
//
//	log := logger.New(
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
package logger
