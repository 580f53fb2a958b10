package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Rules   RulesConfig   `yaml:"rules" mapstructure:"rules"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// EngineConfig configures extraction and the legibility gate.
type EngineConfig struct {
	MinTextLength          int     `yaml:"min_text_length" mapstructure:"min_text_length"`
	MinOCRConfidence       float64 `yaml:"min_ocr_confidence" mapstructure:"min_ocr_confidence"`
	MaxConcurrentDocuments int     `yaml:"max_concurrent_documents" mapstructure:"max_concurrent_documents"`
	PreferDayFirstDates    bool    `yaml:"prefer_day_first_dates" mapstructure:"prefer_day_first_dates"`
}

// RulesConfig points at optional rule-set and policy-field overrides.
type RulesConfig struct {
	RuleSetsPath     string `yaml:"rule_sets_path" mapstructure:"rule_sets_path"`
	PolicyFieldsPath string `yaml:"policy_fields_path" mapstructure:"policy_fields_path"`
}

// MetricsConfig configures KPI reporting.
type MetricsConfig struct {
	DefaultWindowDays int `yaml:"default_window_days" mapstructure:"default_window_days"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port          int `yaml:"port" mapstructure:"port"`
	RatePerSecond int `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DOCVALID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 25)
	v.SetDefault("engine.min_text_length", 40)
	v.SetDefault("engine.min_ocr_confidence", 0.5)
	v.SetDefault("engine.max_concurrent_documents", 4)
	v.SetDefault("engine.prefer_day_first_dates", false)
	v.SetDefault("metrics.default_window_days", 30)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
