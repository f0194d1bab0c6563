// Package config loads application configuration from file and
// environment and bootstraps the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/propai/catalyst-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  store.Config `yaml:"store" mapstructure:"store"`
	Ingest IngestConfig `yaml:"ingest" mapstructure:"ingest"`
	Impact ImpactConfig `yaml:"impact" mapstructure:"impact"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// IngestConfig configures the ingestion pipeline and its business rules.
// The thresholds are tunable constants, not hardcoded logic.
type IngestConfig struct {
	MinCapexUSD float64 `yaml:"min_capex_usd" mapstructure:"min_capex_usd"`
	MinJobs     int     `yaml:"min_jobs" mapstructure:"min_jobs"`
	MaxAgeYears int     `yaml:"max_age_years" mapstructure:"max_age_years"`

	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`

	// SourcesFile optionally adds or overrides source adapters without a
	// rebuild; see ingest.LoadSources.
	SourcesFile string `yaml:"sources_file" mapstructure:"sources_file"`
}

// ImpactConfig configures catalyst influence scoring.
type ImpactConfig struct {
	ScoreCeiling float64 `yaml:"score_ceiling" mapstructure:"score_ceiling"`
}

// ServerConfig configures the scoring server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("PROPAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.database_url", "")
	v.SetDefault("ingest.sources_file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("ingest.min_capex_usd", 50_000_000)
	v.SetDefault("ingest.min_jobs", 200)
	v.SetDefault("ingest.max_age_years", 7)
	v.SetDefault("ingest.concurrency", 4)
	v.SetDefault("ingest.timeout_secs", 30)
	v.SetDefault("ingest.user_agent", "propai-catalyst-cli")
	v.SetDefault("impact.score_ceiling", 1.5)

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
