package panels

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the panels configuration file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panels file: %w", err)
	}

	catalog := &Catalog{}
	if err := yaml.Unmarshal(raw, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse panels file: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid panels file %s: %w", path, err)
	}
	return catalog, nil
}

// Validate checks structural requirements on the catalog: identities are
// present, command names are unique, and every query variable names the
// model attribute used to match inventory records.
func (c *Catalog) Validate() error {
	if len(c.Dashboards) == 0 {
		return fmt.Errorf("at least one dashboard must be configured")
	}

	seen := make(map[string]string)
	for _, dashboard := range c.Dashboards {
		if dashboard.Slug == "" {
			return fmt.Errorf("dashboard is missing a slug")
		}
		if dashboard.UID == "" {
			return fmt.Errorf("dashboard %s is missing a uid", dashboard.Slug)
		}
		for _, panel := range dashboard.Panels {
			if panel.CommandName == "" {
				return fmt.Errorf("dashboard %s has a panel without a command name", dashboard.Slug)
			}
			if other, dup := seen[panel.CommandName]; dup {
				return fmt.Errorf("command name %s appears in dashboards %s and %s", panel.CommandName, other, dashboard.Slug)
			}
			seen[panel.CommandName] = dashboard.Slug
			if panel.PanelID < 1 {
				return fmt.Errorf("panel %s has an invalid panel id %d", panel.CommandName, panel.PanelID)
			}
			for _, variable := range panel.Variables {
				if variable.Name == "" {
					return fmt.Errorf("panel %s has a variable without a name", panel.CommandName)
				}
				if variable.Query != "" && variable.ModelAttr == "" {
					return fmt.Errorf("variable %s on panel %s specifies a query without a modelattr", variable.Name, panel.CommandName)
				}
			}
		}
	}
	return nil
}
