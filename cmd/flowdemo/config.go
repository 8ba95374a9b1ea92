package main

import (
	"fmt"

	"github.com/kbukum/syncflow/config"
	"github.com/kbukum/syncflow/observability"
	"github.com/kbukum/syncflow/validation"
)

// DemoConfig is the configuration of flowdemo.
type DemoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Demo                 DemoSettings         `yaml:"demo" mapstructure:"demo"`
}

// DemoSettings holds the defaults of the scenario commands.
type DemoSettings struct {
	MaxValue      uint64   `yaml:"max_value" mapstructure:"max_value" validate:"gt=0"`
	Threshold     uint64   `yaml:"threshold" mapstructure:"threshold"`
	BlueprintDirs []string `yaml:"blueprint_dirs" mapstructure:"blueprint_dirs"`
	UnknownLabels string   `yaml:"unknown_labels" mapstructure:"unknown_labels" validate:"omitempty,oneof=fail ignore"`
}

// configDefaults is registered with the loader so that keys set to their
// zero value (demo.threshold: 0) are kept.
func configDefaults() map[string]any {
	defaults := observability.ConfigDefaults("telemetry")
	defaults["name"] = serviceName
	defaults["demo.max_value"] = 100
	defaults["demo.threshold"] = 300
	defaults["demo.blueprint_dirs"] = []string{"./blueprints", "./cmd/flowdemo/blueprints"}
	defaults["demo.unknown_labels"] = "fail"
	return defaults
}

// ApplyDefaults fills the service section. Demo and telemetry defaults come
// from configDefaults at load time.
func (c *DemoConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
}

// Validate checks every section.
func (c *DemoConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c.Telemetry); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	if err := validation.Validate(c.Demo); err != nil {
		return fmt.Errorf("config.demo: %w", err)
	}
	return nil
}
