package panels

// Variable is a named, possibly inventory-resolved parameter influencing a
// panel's rendered query. IncludeInCmd and IncludeInURL default to true when
// omitted from the configuration.
type Variable struct {
	Name         string            `yaml:"name"`
	FriendlyName string            `yaml:"friendly_name"`
	IncludeInCmd *bool             `yaml:"includeincmd"`
	IncludeInURL *bool             `yaml:"includeinurl"`
	Query        string            `yaml:"query"`
	ModelAttr    string            `yaml:"modelattr"`
	Filter       map[string]string `yaml:"filter"`
	Value        string            `yaml:"value"`
	Response     string            `yaml:"response"`
}

// InCmd reports whether the variable is exposed as a positional chat
// argument.
func (v Variable) InCmd() bool {
	return v.IncludeInCmd == nil || *v.IncludeInCmd
}

// InURL reports whether the variable's resolved value is added to the render
// payload.
func (v Variable) InURL() bool {
	return v.IncludeInURL == nil || *v.IncludeInURL
}

// Display returns the friendly name, falling back to the variable name.
func (v Variable) Display() string {
	if v.FriendlyName != "" {
		return v.FriendlyName
	}
	return v.Name
}

// Panel is a single renderable chart definition within a dashboard.
type Panel struct {
	CommandName  string     `yaml:"command_name"`
	FriendlyName string     `yaml:"friendly_name"`
	PanelID      int        `yaml:"panel_id"`
	Variables    []Variable `yaml:"variables"`
}

// Subcommand returns the chat subcommand name for this panel.
func (p Panel) Subcommand() string {
	return "get-" + p.CommandName
}

// Dashboard is a named collection of panels.
type Dashboard struct {
	Slug   string  `yaml:"dashboard_slug"`
	UID    string  `yaml:"dashboard_uid"`
	Panels []Panel `yaml:"panels"`
}

// Catalog is the full set of configured dashboards. It is loaded once at
// startup and never mutated afterwards; per-invocation resolution state
// lives elsewhere.
type Catalog struct {
	Dashboards []Dashboard `yaml:"dashboards"`
}

// Find locates the dashboard and panel serving the given chat subcommand.
func (c *Catalog) Find(subcommand string) (Dashboard, Panel, bool) {
	for _, dashboard := range c.Dashboards {
		for _, panel := range dashboard.Panels {
			if panel.Subcommand() == subcommand {
				return dashboard, panel, true
			}
		}
	}
	return Dashboard{}, Panel{}, false
}
