package config

import "github.com/hance08/weka/internal/constants"

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Output     OutputConfig   `mapstructure:"output"`
	Logging    LoggingConfig  `mapstructure:"logging"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type OutputConfig struct {
	Precision int32 `mapstructure:"precision"`
}

type LoggingConfig struct {
	Debug bool `mapstructure:"debug"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Path: ""},
		Output:   OutputConfig{Precision: constants.DefaultPrecision},
		Logging:  LoggingConfig{Debug: false},
	}
}
