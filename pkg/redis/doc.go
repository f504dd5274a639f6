// Package redis provides helpers for connecting to the Redis server that
// backs shared session storage in multi-instance deployments.
//
// It wraps the go-redis client with a Connect function that retries until the
// server is reachable, and a Healthcheck probe for readiness endpoints.
// Configuration comes from the Config struct, whose fields can be populated
// from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	cfg := redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//	}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
package redis
