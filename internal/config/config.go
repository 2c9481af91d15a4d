package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. SALESCOPE_CATALOG_URL.
const envPrefix = "SALESCOPE"

// Config represents the top-level salescope.yaml configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Catalog CatalogConfig `yaml:"catalog" envconfig:"CATALOG"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig locates the raw sales log.
type InputConfig struct {
	Path string `yaml:"path" envconfig:"PATH"`
}

// OutputConfig locates the two generated files.
type OutputConfig struct {
	ReportPath   string `yaml:"report_path" envconfig:"REPORT_PATH"`
	EnrichedPath string `yaml:"enriched_path" envconfig:"ENRICHED_PATH"`
}

// CatalogConfig controls the remote product catalog fetch.
type CatalogConfig struct {
	URL     string   `yaml:"url" envconfig:"URL"`
	Limit   int      `yaml:"limit" envconfig:"LIMIT"`
	Timeout Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// Duration wraps time.Duration so YAML files can use values like "10s".
type Duration time.Duration

// MarshalYAML renders the duration in its human-readable form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses durations like "10s" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalText parses durations from environment overrides.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ReportConfig holds the report layout knobs.
type ReportConfig struct {
	TopProducts  int `yaml:"top_products" envconfig:"TOP_PRODUCTS"`
	TopCustomers int `yaml:"top_customers" envconfig:"TOP_CUSTOMERS"`
	TrendRows    int `yaml:"trend_rows" envconfig:"TREND_ROWS"`
	LowThreshold int `yaml:"low_threshold" envconfig:"LOW_THRESHOLD"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
}

// Load reads salescope.yaml, then overlays environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "data/sales_data.txt",
		},
		Output: OutputConfig{
			ReportPath:   "data/sales_report.txt",
			EnrichedPath: "data/enriched_sales_data.txt",
		},
		Catalog: CatalogConfig{
			URL:     "https://dummyjson.com/products",
			Limit:   100,
			Timeout: Duration(10 * time.Second),
		},
		Report: ReportConfig{
			TopProducts:  5,
			TopCustomers: 5,
			TrendRows:    10,
			LowThreshold: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
