// Package config defines the application settings and loads them from the
// YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Romz16/ProfitMAX/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all runtime settings for ProfitMAX. The catalog state
// itself lives in the JSON data file, not here.
type Configuration struct {
	DataFile string        `yaml:"dataFile,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
	Server   ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ServerConfig holds HTTP API configuration options
type ServerConfig struct {
	Address       string `yaml:"address,omitempty"`
	MaxUploadSize string `yaml:"maxUploadSize,omitempty"` // e.g. "256K", "10M"
}

// Default returns the settings used when no settings file exists.
func Default() *Configuration {
	return &Configuration{
		DataFile: constants.DefaultDataFile,
		Server: ServerConfig{
			Address: constants.DefaultServerAddress,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// settings there. A missing file yields the defaults without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error accessing config file, %s", err)
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := Default()
	err := viper.Unmarshal(configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.DataFile == "" {
		configuration.DataFile = constants.DefaultDataFile
	}
	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}

	return configuration, nil
}

// ValidateConfiguration performs general validation of the settings and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown log level '%s'; falling back to info", c.Logging.Level))
	}

	switch c.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV:
	default:
		warnings = append(warnings, fmt.Sprintf("Unknown output format '%s'; falling back to %s", c.Output.Format, constants.OutputFormatPretty))
	}

	return warnings
}
