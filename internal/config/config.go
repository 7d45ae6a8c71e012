// Package config provides configuration management for the analysis CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Provider ProviderConfig `mapstructure:"provider"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds indicator parameters.
type AnalysisConfig struct {
	Period          string  `mapstructure:"period"`           // e.g. 3y, 6mo, ytd, max
	ShortWindow     int     `mapstructure:"short_window"`     // short moving average
	LongWindow      int     `mapstructure:"long_window"`      // long moving average
	RSIPeriod       int     `mapstructure:"rsi_period"`
	BollingerPeriod int     `mapstructure:"bollinger_period"`
	BollingerMult   float64 `mapstructure:"bollinger_mult"`
	MACDFast        int     `mapstructure:"macd_fast"`
	MACDSlow        int     `mapstructure:"macd_slow"`
	MACDSignal      int     `mapstructure:"macd_signal"`
	VolumeShortMA   int     `mapstructure:"volume_short_ma"`
	VolumeLongMA    int     `mapstructure:"volume_long_ma"`
}

// ChartConfig holds chart rendering configuration.
type ChartConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	OutputDir string `mapstructure:"output_dir"`
}

// ProviderConfig holds market-data provider configuration.
type ProviderConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marketmetrics"
	}
	return filepath.Join(home, ".config", "marketmetrics")
}

// Load reads configuration from the given directory, falling back to
// defaults when no config file exists. Environment variables prefixed with
// MARKETMETRICS_ override file values.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("MARKETMETRICS")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("MARKETMETRICS_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.period", "3y")
	v.SetDefault("analysis.short_window", 50)
	v.SetDefault("analysis.long_window", 200)
	v.SetDefault("analysis.rsi_period", 14)
	v.SetDefault("analysis.bollinger_period", 20)
	v.SetDefault("analysis.bollinger_mult", 2.0)
	v.SetDefault("analysis.macd_fast", 12)
	v.SetDefault("analysis.macd_slow", 26)
	v.SetDefault("analysis.macd_signal", 9)
	v.SetDefault("analysis.volume_short_ma", 5)
	v.SetDefault("analysis.volume_long_ma", 50)

	v.SetDefault("chart.width", 1280)
	v.SetDefault("chart.height", 720)
	v.SetDefault("chart.output_dir", "charts")

	v.SetDefault("provider.base_url", "https://financialmodelingprep.com/stable")
	v.SetDefault("provider.timeout_seconds", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", true)
}
