// Package config loads program configuration with viper.
//
// LoadConfig reads a config.yml found in the standard locations (or given
// explicitly), overlays environment variables and an optional .env file
// loaded with godotenv, and unmarshals the result into the caller's struct.
//
// # Usage
//
//	var cfg DemoConfig
//	if err := config.LoadConfig("flowdemo", &cfg, config.WithEnvPrefix("FLOWDEMO")); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Environment variables map onto nested keys by splitting on underscores,
// so FLOWDEMO_LOGGING_LEVEL sets logging.level.
package config
