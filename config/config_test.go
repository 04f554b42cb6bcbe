package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func TestLoadEmptyPath(t *testing.T) {
	t.Parallel()

	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(got, Default()); diff != nil {
		t.Error(diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
listen: ":9090"
data_dir: /var/lib/trafficdb
cors_origins:
  - https://example.com
discovery:
  base_url: https://discovery.example.com
  timeout: 30s
geocode:
  rate_per_second: 0.5
search:
  categories:
    - road closure/ construction
  max_distance_km: 25
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Listen != ":9090" {
		t.Errorf("listen = %q", got.Listen)
	}
	if got.DataDir != "/var/lib/trafficdb" {
		t.Errorf("data dir = %q", got.DataDir)
	}
	if got.Discovery.BaseURL != "https://discovery.example.com" {
		t.Errorf("discovery base url = %q", got.Discovery.BaseURL)
	}
	if got.Discovery.Timeout.Std() != 30*time.Second {
		t.Errorf("discovery timeout = %v", got.Discovery.Timeout.Std())
	}
	if got.Geocode.RatePerSecond != 0.5 {
		t.Errorf("geocode rate = %v", got.Geocode.RatePerSecond)
	}
	if got.Search.MaxDistanceKM != 25 {
		t.Errorf("max distance = %v", got.Search.MaxDistanceKM)
	}
	if len(got.Search.Categories) != 1 {
		t.Errorf("categories = %v", got.Search.Categories)
	}

	// Untouched keys keep their defaults.
	if got.Discovery.Attempts != 2 {
		t.Errorf("attempts = %d", got.Discovery.Attempts)
	}
	if got.Geocode.BaseURL != Default().Geocode.BaseURL {
		t.Errorf("geocode base url = %q", got.Geocode.BaseURL)
	}
	if got.Environment != "development" {
		t.Errorf("environment = %q", got.Environment)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [:::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("discovery:\n  timeout: thirty seconds\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error for a bad duration")
	}
}
