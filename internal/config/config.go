package config

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Intake    IntakeConfig    `yaml:"intake" mapstructure:"intake"`
	Feedback  FeedbackConfig  `yaml:"feedback" mapstructure:"feedback"`
	OCR       OCRConfig       `yaml:"ocr" mapstructure:"ocr"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig configures the on-disk layout for jobs, candidates, and reports.
type DataConfig struct {
	BaseDir string `yaml:"base_dir" mapstructure:"base_dir"`
}

// IntakeDir is the drop directory scanned for new job and candidate files.
func (d DataConfig) IntakeDir() string {
	return filepath.Join(d.BaseDir, "intake")
}

// JobDir returns the directory holding a job's description and insights.
func (d DataConfig) JobDir(jobName string) string {
	return filepath.Join(d.BaseDir, "jobs", jobName)
}

// CandidatesDir returns the directory holding all candidate records for a job.
func (d DataConfig) CandidatesDir(jobName string) string {
	return filepath.Join(d.BaseDir, "candidates", jobName)
}

// CandidateDir returns the record directory for a single candidate.
func (d DataConfig) CandidateDir(jobName, candidateName string) string {
	return filepath.Join(d.CandidatesDir(jobName), candidateName)
}

// OutputDir returns the report output directory for a job.
func (d DataConfig) OutputDir(jobName string) string {
	return filepath.Join(d.BaseDir, "output", jobName)
}

// StoreConfig configures the review-run ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key              string  `yaml:"key" mapstructure:"key"`
	Model            string  `yaml:"model" mapstructure:"model"`
	MaxTokens        int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerMin   int     `yaml:"requests_per_min" mapstructure:"requests_per_min"`
	Temperature      float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxRetryAttempts int     `yaml:"max_retry_attempts" mapstructure:"max_retry_attempts"`
}

// IntakeConfig configures candidate file intake.
type IntakeConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb" mapstructure:"max_file_size_mb"`

	// AmbiguousReuse controls the name-collision case where neither side has
	// extractable identifiers: true reuses the existing record, false creates
	// a separate record flagged for manual review.
	AmbiguousReuse bool `yaml:"ambiguous_reuse" mapstructure:"ambiguous_reuse"`
}

// MaxFileSizeBytes returns the intake size limit in bytes.
func (c IntakeConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// FeedbackConfig configures the feedback/insight loop.
type FeedbackConfig struct {
	// InsightCadence regenerates insights whenever the cumulative feedback
	// count is a positive multiple of this value.
	InsightCadence int `yaml:"insight_cadence" mapstructure:"insight_cadence"`
}

// OCRConfig configures PDF text extraction.
type OCRConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
}

// ServerConfig configures the read-only rankings API.
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
	v.SetEnvPrefix("SCREENING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.base_dir", "data")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.requests_per_min", 50)
	v.SetDefault("anthropic.temperature", 0.2)
	v.SetDefault("anthropic.max_retry_attempts", 3)
	v.SetDefault("intake.max_file_size_mb", 10)
	v.SetDefault("intake.ambiguous_reuse", true)
	v.SetDefault("feedback.insight_cadence", 2)
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// SQLitePath returns the ledger path for the sqlite driver when no explicit
// database URL is configured.
func (c *Config) SQLitePath() string {
	if c.Store.DatabaseURL != "" {
		return c.Store.DatabaseURL
	}
	return filepath.Join(c.Data.BaseDir, "screening.db")
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
