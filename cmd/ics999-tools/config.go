package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cosmos/ics999/modules/apps/ics999/types"

	host "github.com/cosmos/ibc-go/v10/modules/core/24-host"
)

const envPrefix = "ICS999"

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// Config holds the settings shared by the offline tools.
type Config struct {
	// PortID is the port used for hops given as bare channel ids.
	PortID string `mapstructure:"port_id"`
	// DefaultTimeoutSecs is the relative timeout used by the timeout command
	// when none is given.
	DefaultTimeoutSecs uint64 `mapstructure:"default_timeout_secs"`
	// Output is the output format, json or yaml.
	Output string `mapstructure:"output"`
	// Indent pretty prints JSON output.
	Indent bool `mapstructure:"indent"`
	// LogJSON switches the diagnostic logger to JSON output.
	LogJSON bool `mapstructure:"log_json"`
}

// LoadConfig reads the configuration from the given file, if any, and from
// ICS999_ prefixed environment variables.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("ics999-tools")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ics999")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port_id", types.PortID)
	v.SetDefault("default_timeout_secs", types.DefaultTimeoutSecs)
	v.SetDefault("output", outputJSON)
	v.SetDefault("indent", false)
	v.SetDefault("log_json", false)
}

// Validate checks the configured port, timeout and output format.
func (c Config) Validate() error {
	if err := host.PortIdentifierValidator(c.PortID); err != nil {
		return err
	}

	if err := types.NewParams(true, true, c.DefaultTimeoutSecs).Validate(); err != nil {
		return err
	}

	switch c.Output {
	case outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, expected %s or %s", c.Output, outputJSON, outputYAML)
	}
}
