package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the advise service configuration.
type Config struct {
	Server   Settings `hcl:"server,block"`
	Defaults Defaults `hcl:"defaults,block"`
}

// Settings contains listener-level configuration.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Defaults are applied to advise requests that omit the corresponding
// fields.
type Defaults struct {
	Decks       int `hcl:"decks,optional"`
	Simulations int `hcl:"simulations,optional"`
	Workers     int `hcl:"workers,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Defaults: Defaults{
			Decks:       6,
			Simulations: 5000,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Defaults.Decks == 0 {
		config.Defaults.Decks = 6
	}
	if config.Defaults.Simulations == 0 {
		config.Defaults.Simulations = 5000
	}

	return &config, nil
}

// Validate validates the service configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Defaults.Decks < 1 {
		return fmt.Errorf("default decks must be >= 1, got %d", c.Defaults.Decks)
	}
	if c.Defaults.Simulations < 1 {
		return fmt.Errorf("default simulations must be >= 1, got %d", c.Defaults.Simulations)
	}
	if c.Defaults.Workers < 0 {
		return fmt.Errorf("default workers must be >= 0, got %d", c.Defaults.Workers)
	}
	return nil
}

// ListenAddr returns the full listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
