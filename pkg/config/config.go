// Package config loads the service configuration file: Grafana connection
// info, render display defaults, the panels file location and the inventory
// backend.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/inventory"
)

// StaticRecord is one inventory object seeded from configuration.
type StaticRecord struct {
	Name  string            `yaml:"name"`
	Attrs map[string]string `yaml:"attrs"`
}

// InventoryConfig selects and configures the inventory backend.
type InventoryConfig struct {
	// Source is "static" or "http".
	Source string `yaml:"source"`
	// BaseURL and Token configure the http source.
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	// Paths maps entity-type names to their REST API paths for the http
	// source, e.g. Device: dcim/devices.
	Paths map[string]string `yaml:"paths"`
	// Entities holds the record sets for the static source.
	Entities map[string][]StaticRecord `yaml:"entities"`
}

// Config is the full service configuration.
type Config struct {
	GrafanaURL      string `yaml:"grafana_url"`
	GrafanaAPIKey   string `yaml:"grafana_api_key"`
	GrafanaOrgID    int    `yaml:"grafana_org_id"`
	DefaultWidth    int    `yaml:"default_width"`
	DefaultHeight   int    `yaml:"default_height"`
	DefaultTheme    string `yaml:"default_theme"`
	DefaultTimespan string `yaml:"default_timespan"`
	DefaultTZ       string `yaml:"default_tz"`
	PanelsFile      string `yaml:"panels_file"`
	ListenAddr      string `yaml:"listen_addr"`
	// PublicURL is the externally reachable base URL, used for links the
	// chat platform fetches (served images, static assets).
	PublicURL string          `yaml:"public_url"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// Load reads and validates the service configuration.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{
		DefaultTheme: grafana.ThemeDark,
		ListenAddr:   ":8080",
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and cross-field consistency.
func (c *Config) Validate() error {
	if c.PanelsFile == "" {
		return fmt.Errorf("panels_file is required")
	}
	if _, err := c.Settings(); err != nil {
		return err
	}

	switch c.Inventory.Source {
	case "static":
		if len(c.Inventory.Entities) == 0 {
			return fmt.Errorf("static inventory requires at least one entity type")
		}
	case "http":
		if c.Inventory.BaseURL == "" {
			return fmt.Errorf("http inventory requires a base_url")
		}
		if len(c.Inventory.Paths) == 0 {
			return fmt.Errorf("http inventory requires at least one entity path")
		}
	default:
		return fmt.Errorf("inventory source must be static or http, got %q", c.Inventory.Source)
	}
	return nil
}

// Settings builds the validated service-wide render settings.
func (c *Config) Settings() (*grafana.Settings, error) {
	settings := &grafana.Settings{
		URL:      c.GrafanaURL,
		APIKey:   c.GrafanaAPIKey,
		OrgID:    c.GrafanaOrgID,
		Width:    c.DefaultWidth,
		Height:   c.DefaultHeight,
		Theme:    c.DefaultTheme,
		Timezone: c.DefaultTZ,
	}

	if c.DefaultTimespan != "" {
		timespan, err := grafana.ParseISODuration(c.DefaultTimespan)
		if err != nil {
			return nil, fmt.Errorf("invalid default_timespan: %w", err)
		}
		settings.Timespan = timespan
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Registry builds the inventory registry for the configured source.
func (c *Config) Registry() *inventory.Registry {
	registry := inventory.NewRegistry()

	switch c.Inventory.Source {
	case "static":
		for entityType, entries := range c.Inventory.Entities {
			records := make([]inventory.Record, 0, len(entries))
			for _, entry := range entries {
				records = append(records, inventory.Record{Name: entry.Name, Attrs: entry.Attrs})
			}
			registry.Register(entityType, inventory.NewStaticSource(records))
		}
	case "http":
		for entityType, path := range c.Inventory.Paths {
			registry.Register(entityType, inventory.NewHTTPSource(c.Inventory.BaseURL, c.Inventory.Token, path))
		}
	}
	return registry
}
