// Package httpserver runs an HTTP server with the lifecycle plumbing a
// service needs around it: graceful shutdown on signals or context
// cancellation, environment-driven configuration, and probe handlers for
// orchestrators.
//
// Usage:
//
//	cfg := config.MustLoad[httpserver.Config]()
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//
//	mux := chi.NewRouter()
//	mux.Get("/healthz", httpserver.Healthcheck(log, nil))
//	mux.Get("/readyz", httpserver.Healthcheck(log, map[string]httpserver.Check{
//		"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
//	}))
//
//	if err := srv.Run(ctx, mux); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until SIGINT, SIGTERM, or context cancellation, then drains
// in-flight requests within the configured shutdown timeout.
package httpserver
