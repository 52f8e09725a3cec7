package config

import (
	"fmt"

	"github.com/kbukum/speechprep/logger"
)

// ServiceConfig contains the fields every speechprep command shares.
// Commands extend it by embedding it in their own config structs.
//
// Example:
//
//	type ImportConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Workers int `yaml:"workers" mapstructure:"workers"`
//	}
type ServiceConfig struct {
	Name    string        `yaml:"name" mapstructure:"name"`
	Debug   bool          `yaml:"debug" mapstructure:"debug"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs call it first from their own ApplyDefaults.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "speechprep"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
