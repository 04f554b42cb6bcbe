// Package config loads the trafficdb service configuration from a YAML file.
// Anything not set in the file keeps its default; secrets come from flags or
// the environment, not from the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DiscoveryConfig configures the event discovery client.
type DiscoveryConfig struct {
	BaseURL  string   `yaml:"base_url"`
	Timeout  Duration `yaml:"timeout"`
	Attempts int      `yaml:"attempts"`
}

// GeocodeConfig configures the geocoding client. RatePerSecond and Burst feed
// a client-side token bucket; public geocoders enforce one server-side.
type GeocodeConfig struct {
	BaseURL       string   `yaml:"base_url"`
	UserAgent     string   `yaml:"user_agent"`
	Timeout       Duration `yaml:"timeout"`
	RatePerSecond float64  `yaml:"rate_per_second"`
	Burst         int      `yaml:"burst"`
}

// SearchConfig configures the pipeline itself.
type SearchConfig struct {
	Categories      []string `yaml:"categories"`
	CategoryWorkers int      `yaml:"category_workers"`
	EnrichWorkers   int      `yaml:"enrich_workers"`
	MaxDistanceKM   float64  `yaml:"max_distance_km"`
	RetryBackoff    Duration `yaml:"retry_backoff"`
}

// Config is the root service configuration.
type Config struct {
	Listen      string   `yaml:"listen"`
	Environment string   `yaml:"environment"`
	DataDir     string   `yaml:"data_dir"`
	CityDataDir string   `yaml:"city_data_dir"`
	CORSOrigins []string `yaml:"cors_origins"`

	Discovery DiscoveryConfig `yaml:"discovery"`
	Geocode   GeocodeConfig   `yaml:"geocode"`
	Search    SearchConfig    `yaml:"search"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Listen:      ":8080",
		Environment: "development",
		DataDir:     "data/extracted_city_data",
		CityDataDir: "data/prefill_city_data",
		Discovery: DiscoveryConfig{
			Timeout:  Duration(10 * time.Second),
			Attempts: 2,
		},
		Geocode: GeocodeConfig{
			BaseURL:       "https://nominatim.openstreetmap.org",
			UserAgent:     "trafficdb",
			Timeout:       Duration(10 * time.Second),
			RatePerSecond: 1,
			Burst:         1,
		},
		Search: SearchConfig{
			CategoryWorkers: 3,
			EnrichWorkers:   4,
			MaxDistanceKM:   100,
			RetryBackoff:    Duration(500 * time.Millisecond),
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}
