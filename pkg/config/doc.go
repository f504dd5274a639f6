// Package config loads application configuration from environment variables
// and optional .env files.
//
// It pairs github.com/caarlos0/env for struct parsing with
// github.com/joho/godotenv for file loading. Structs declare their
// environment binding through field tags; Load returns a populated value:
//
//	type AppConfig struct {
//		Addr     string        `env:"HTTP_ADDR" envDefault:":8080"`
//		Timeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
//		RedisURL string        `env:"REDIS_URL,required"`
//	}
//
//	cfg := config.MustLoad[AppConfig]()
//
// The default .env file in the working directory is loaded automatically
// before the first parse and silently skipped when absent. Additional files
// load explicitly:
//
//	if err := config.LoadEnv(".env.local"); err != nil {
//		log.Fatal(err)
//	}
//
// File values never override variables already present in the environment.
//
// Failures are comparable with errors.Is against ErrParsingFailed and
// ErrEnvFileLoading; the underlying parser error stays attached for detail.
package config
