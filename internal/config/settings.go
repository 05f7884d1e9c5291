package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/san-kum/golfsim/internal/physics"
)

// Settings are application-wide defaults: a config file, then GOLFSIM_*
// environment variables, then command-line flags.
type Settings struct {
	LogLevel   string             `mapstructure:"logLevel"`
	Surface    string             `mapstructure:"surface"`
	Integrator string             `mapstructure:"integrator"`
	Workers    int                `mapstructure:"workers"`
	Conditions physics.Conditions `mapstructure:"conditions"`
}

// LoadSettings reads settings from path, or from golfsim.{yaml,json,toml}
// in the working directory or ~/.config/golfsim when path is empty. A
// missing default file is not an error.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	def := physics.DefaultConditions()
	v.SetDefault("logLevel", "warn")
	v.SetDefault("surface", physics.Fairway.Name)
	v.SetDefault("integrator", "rk4")
	v.SetDefault("workers", 0)
	v.SetDefault("conditions.temperatureF", def.TemperatureF)
	v.SetDefault("conditions.elevationFt", def.ElevationFt)
	v.SetDefault("conditions.humidityPct", def.HumidityPct)
	v.SetDefault("conditions.windSpeedMph", def.WindSpeedMph)
	v.SetDefault("conditions.windDirectionDeg", def.WindDirectionDeg)

	v.SetEnvPrefix("GOLFSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("golfsim")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/golfsim")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Conditions.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
