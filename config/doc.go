// Package config loads speechprep configuration with Viper.
//
// Sources are layered: a YAML file, then SPEECHPREP_-prefixed environment
// variables (a .env file is loaded first when present), then command-line
// flags the user set explicitly.
//
// # Usage
//
//	var cfg importer.Config
//	err := config.Load("speechprep", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithFlags(flags, nil))
//
// Nested keys use underscores in the environment, e.g. SPEECHPREP_LOGGING_LEVEL.
package config
