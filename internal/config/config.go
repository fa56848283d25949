// Package config provides configuration loading and validation for the CLI, server and worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig,
// e.g. ATS_SERVER_PORT for server.port.
const EnvPrefix = "ATS"

// Defaults applied when neither a config file nor the environment sets a value.
const (
	DefaultFormat      = "text"
	DefaultPort        = 8080
	DefaultConcurrency = 4
	DefaultQueue       = "ats.analyze"
	DefaultExchange    = "ats.results"
	DefaultPrefetch    = 1

	maxConcurrency = 64
)

// ErrNoConfigFile is returned by LoadConfig when an explicit path does not exist.
var ErrNoConfigFile = errors.New("config file not found")

// Config represents the settings shared by every command.
// All fields are optional; missing values use defaults or are supplied by CLI flags.
type Config struct {
	// Sources
	Job    string `mapstructure:"job"`     // Path to a job description file
	JobURL string `mapstructure:"job_url"` // URL of a job posting

	// Output
	Format  string `mapstructure:"format"`  // text or json
	Output  string `mapstructure:"output"`  // Output file path; stdout when empty
	Verbose bool   `mapstructure:"verbose"` // Print boxed score summaries to stderr

	// Behavior
	UseBrowser  bool `mapstructure:"use_browser"` // Headless browser fallback for SPA job boards
	Concurrency int  `mapstructure:"concurrency"` // Batch analysis parallelism

	Server ServerConfig `mapstructure:"server"`
	S3     S3Config     `mapstructure:"s3"`
	AMQP   AMQPConfig   `mapstructure:"amqp"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// S3Config configures the S3-compatible store used for s3:// sources.
// Empty credentials fall back to the default AWS credential chain.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// AMQPConfig configures the analysis worker.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Queue    string `mapstructure:"queue"`
	Exchange string `mapstructure:"exchange"`
	Prefetch int    `mapstructure:"prefetch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
		Server:      ServerConfig{Port: DefaultPort},
		AMQP: AMQPConfig{
			Queue:    DefaultQueue,
			Exchange: DefaultExchange,
			Prefetch: DefaultPrefetch,
		},
	}
}

// LoadConfig reads configuration from an optional YAML or JSON file and from
// ATS_* environment variables, which take precedence over the file.
// An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoConfigFile, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("job", d.Job)
	v.SetDefault("job_url", d.JobURL)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("use_browser", d.UseBrowser)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("s3.region", d.S3.Region)
	v.SetDefault("s3.endpoint", d.S3.Endpoint)
	v.SetDefault("s3.access_key_id", d.S3.AccessKeyID)
	v.SetDefault("s3.secret_access_key", d.S3.SecretAccessKey)
	v.SetDefault("amqp.url", d.AMQP.URL)
	v.SetDefault("amqp.queue", d.AMQP.Queue)
	v.SetDefault("amqp.exchange", d.AMQP.Exchange)
	v.SetDefault("amqp.prefetch", d.AMQP.Prefetch)
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	switch strings.ToLower(c.Format) {
	case "", "text", "txt", "json":
	default:
		return fmt.Errorf("config error: 'format' must be text or json, got %q", c.Format)
	}

	if c.Concurrency < 0 || c.Concurrency > maxConcurrency {
		return fmt.Errorf("config error: 'concurrency' must be between 0 and %d", maxConcurrency)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.AMQP.Prefetch < 0 {
		return fmt.Errorf("config error: 'amqp.prefetch' must be non-negative")
	}
	if (c.S3.AccessKeyID == "") != (c.S3.SecretAccessKey == "") {
		return fmt.Errorf("config error: 's3.access_key_id' and 's3.secret_access_key' must be set together")
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Booleans are OR-ed since false cannot be told apart from unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.S3.Region == "" {
		result.S3.Region = defaults.S3.Region
	}
	if result.S3.Endpoint == "" {
		result.S3.Endpoint = defaults.S3.Endpoint
	}
	if result.S3.AccessKeyID == "" && result.S3.SecretAccessKey == "" {
		result.S3.AccessKeyID = defaults.S3.AccessKeyID
		result.S3.SecretAccessKey = defaults.S3.SecretAccessKey
	}
	if result.AMQP.URL == "" {
		result.AMQP.URL = defaults.AMQP.URL
	}
	if result.AMQP.Queue == "" {
		result.AMQP.Queue = defaults.AMQP.Queue
	}
	if result.AMQP.Exchange == "" {
		result.AMQP.Exchange = defaults.AMQP.Exchange
	}
	if result.AMQP.Prefetch == 0 {
		result.AMQP.Prefetch = defaults.AMQP.Prefetch
	}

	result.Verbose = result.Verbose || defaults.Verbose
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser

	return result
}
