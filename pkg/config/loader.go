package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var autoload sync.Once

// LoadEnv loads the named .env files into the process environment. Existing
// environment variables are never overwritten, so real deployment values
// always beat file contents.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrEnvFileLoading, err)
	}
	return nil
}

// Load parses environment variables into a fresh T based on its env tags. The
// default .env file, when present, is loaded into the environment once per
// process before the first parse.
//
// Example:
//
//	type AppConfig struct {
//		Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//		RedisURL string `env:"REDIS_URL,required"`
//	}
//
//	cfg, err := config.Load[AppConfig]()
//	if err != nil {
//		// handle error
//	}
func Load[T any]() (T, error) {
	autoload.Do(func() {
		// The file is optional; a deployment without one runs on real
		// environment variables alone.
		_ = godotenv.Load()
	})

	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingFailed, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it at startup for
// configuration the process cannot run without.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}
