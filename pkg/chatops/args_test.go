package chatops

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/panels"
)

func argsSettings() *grafana.Settings {
	return &grafana.Settings{
		URL:      "http://grafana.example.com",
		APIKey:   "abc123",
		OrgID:    1,
		Width:    600,
		Height:   400,
		Theme:    grafana.ThemeDark,
		Timespan: 12 * time.Hour,
		Timezone: "UTC",
	}
}

func argsPanel() panels.Panel {
	hidden := false
	return panels.Panel{
		CommandName: "site-traffic",
		PanelID:     12,
		Variables: []panels.Variable{
			{Name: "site"},
			{Name: "device", Response: "any"},
			{Name: "interval", IncludeInCmd: &hidden, Response: "5m"},
		},
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:   "positional in declaration order",
			tokens: []string{"lax", "rtr1"},
			want: map[string]string{
				"site": "lax", "device": "rtr1", "interval": "5m",
				"width": "600", "height": "400", "theme": "dark", "timespan": "PT12H", "timezone": "UTC",
			},
		},
		{
			name:   "missing positionals take configured responses",
			tokens: []string{"lax"},
			want: map[string]string{
				"site": "lax", "device": "any", "interval": "5m",
				"width": "600", "height": "400", "theme": "dark", "timespan": "PT12H", "timezone": "UTC",
			},
		},
		{
			name:   "no tokens at all",
			tokens: nil,
			want: map[string]string{
				"site": "", "device": "any", "interval": "5m",
				"width": "600", "height": "400", "theme": "dark", "timespan": "PT12H", "timezone": "UTC",
			},
		},
		{
			name:   "default parameter rewritten as flag",
			tokens: []string{"lax", "width=800", "theme=light"},
			want: map[string]string{
				"site": "lax", "device": "any", "interval": "5m",
				"width": "800", "height": "400", "theme": "light", "timespan": "PT12H", "timezone": "UTC",
			},
		},
		{
			name:   "explicit flag form accepted",
			tokens: []string{"--timespan=PT1H", "lax"},
			want: map[string]string{
				"site": "lax", "device": "any", "interval": "5m",
				"width": "600", "height": "400", "theme": "dark", "timespan": "PT1H", "timezone": "UTC",
			},
		},
		{
			name:    "flag without value",
			tokens:  []string{"--theme"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			tokens:  []string{"--depth=3"},
			wantErr: true,
		},
		{
			name:    "too many positionals",
			tokens:  []string{"lax", "rtr1", "extra"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(argsPanel(), argsSettings(), tt.tokens)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArgs(%v) error = %v, wantErr %v", tt.tokens, err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("ParseArgs error = %T, want *ParseError", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseArgs(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

// A panel with no chat-visible variables still accepts the default
// parameters.
func TestParseArgsHiddenOnly(t *testing.T) {
	hidden := false
	panel := panels.Panel{
		CommandName: "overview",
		PanelID:     1,
		Variables: []panels.Variable{
			{Name: "interval", IncludeInCmd: &hidden, Response: "1m"},
		},
	}

	got, err := ParseArgs(panel, argsSettings(), []string{"height=900"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if got["interval"] != "1m" {
		t.Errorf("interval = %q, want 1m", got["interval"])
	}
	if got["height"] != "900" {
		t.Errorf("height = %q, want 900", got["height"])
	}
}
