// Package config parses process configuration from environment variables
// into tagged structs with github.com/caarlos0/env/v11, after loading an
// optional .env file with github.com/joho/godotenv.
//
// Each struct type is parsed once and cached, so packages can call Load for
// their own configuration without coordinating:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
// Failures wrap ErrParsingConfig or ErrLoadingEnv.
package config
