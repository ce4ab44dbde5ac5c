package panels

import (
	"os"
	"path/filepath"
	"testing"
)

const samplePanels = `---
dashboards:
  - dashboard_slug: network-health
    dashboard_uid: abc123def
    panels:
      - command_name: cpu-usage
        friendly_name: CPU Usage
        panel_id: 7
        variables:
          - name: device
            friendly_name: Device
            query: Device
            modelattr: name
      - command_name: site-traffic
        friendly_name: Site Traffic
        panel_id: 12
        variables:
          - name: site
            query: Site
            modelattr: slug
          - name: interval
            includeincmd: false
            response: 5m
`

func writePanels(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panels.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write panels file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	catalog, err := Load(writePanels(t, samplePanels))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if len(catalog.Dashboards) != 1 {
		t.Fatalf("got %d dashboards, want 1", len(catalog.Dashboards))
	}
	dashboard := catalog.Dashboards[0]
	if dashboard.Slug != "network-health" || dashboard.UID != "abc123def" {
		t.Errorf("dashboard identity = %q/%q", dashboard.Slug, dashboard.UID)
	}
	if len(dashboard.Panels) != 2 {
		t.Fatalf("got %d panels, want 2", len(dashboard.Panels))
	}

	device := dashboard.Panels[0].Variables[0]
	if !device.InCmd() || !device.InURL() {
		t.Error("omitted include flags should default to true")
	}
	interval := dashboard.Panels[1].Variables[1]
	if interval.InCmd() {
		t.Error("includeincmd false should hide the variable from chat")
	}
	if interval.Response != "5m" {
		t.Errorf("interval response = %q, want 5m", interval.Response)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("Load of missing file should return an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty catalog",
			content: "dashboards: []",
		},
		{
			name: "missing uid",
			content: `---
dashboards:
  - dashboard_slug: network-health
    panels:
      - command_name: cpu-usage
        panel_id: 7
`,
		},
		{
			name: "duplicate command name",
			content: `---
dashboards:
  - dashboard_slug: network-health
    dashboard_uid: abc
    panels:
      - command_name: cpu-usage
        panel_id: 7
      - command_name: cpu-usage
        panel_id: 8
`,
		},
		{
			name: "query without modelattr",
			content: `---
dashboards:
  - dashboard_slug: network-health
    dashboard_uid: abc
    panels:
      - command_name: cpu-usage
        panel_id: 7
        variables:
          - name: device
            query: Device
`,
		},
		{
			name: "zero panel id",
			content: `---
dashboards:
  - dashboard_slug: network-health
    dashboard_uid: abc
    panels:
      - command_name: cpu-usage
        panel_id: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writePanels(t, tt.content)); err == nil {
				t.Error("Load should reject invalid catalog")
			}
		})
	}
}

func TestFind(t *testing.T) {
	catalog, err := Load(writePanels(t, samplePanels))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	tests := []struct {
		subcommand string
		wantPanel  string
		wantFound  bool
	}{
		{"get-cpu-usage", "cpu-usage", true},
		{"get-site-traffic", "site-traffic", true},
		{"get-memory", "", false},
		{"cpu-usage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.subcommand, func(t *testing.T) {
			_, panel, found := catalog.Find(tt.subcommand)
			if found != tt.wantFound {
				t.Fatalf("Find(%q) found = %v, want %v", tt.subcommand, found, tt.wantFound)
			}
			if found && panel.CommandName != tt.wantPanel {
				t.Errorf("Find(%q) = panel %q, want %q", tt.subcommand, panel.CommandName, tt.wantPanel)
			}
		})
	}
}
