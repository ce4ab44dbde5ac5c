package grafana

import (
	"fmt"
	"strconv"
	"time"
)

// Themes accepted by the Grafana renderer.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultParams are the display parameters every panel subcommand accepts
// on top of its own variables.
var DefaultParams = [...]string{"width", "height", "theme", "timespan", "timezone"}

// Settings holds the Grafana connection info plus the display defaults
// applied to a render request. The service-wide copy is immutable; each
// invocation works on a Clone so user-supplied overrides never leak between
// requests.
type Settings struct {
	URL      string
	APIKey   string
	OrgID    int
	Width    int
	Height   int
	Theme    string
	Timespan time.Duration
	Timezone string
}

// Validate checks the whole settings struct. It runs at load time and again
// after every Set, so an invalid override can never be observed.
func (s *Settings) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("grafana url is required")
	}
	if s.APIKey == "" {
		return fmt.Errorf("grafana api key is required")
	}
	if s.OrgID < 1 {
		return fmt.Errorf("grafana org id must be positive, got %d", s.OrgID)
	}
	if s.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", s.Width)
	}
	if s.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", s.Height)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeLight, ThemeDark, s.Theme)
	}
	if s.Timespan < 0 {
		return fmt.Errorf("timespan must not be negative")
	}
	return nil
}

// Clone returns an independent copy for one invocation to mutate.
func (s *Settings) Clone() *Settings {
	clone := *s
	return &clone
}

// Set applies one default parameter from its chat string form. The update is
// atomic: the candidate value is parsed, the whole struct is re-validated,
// and only then is the field assigned. An empty value keeps the current one.
func (s *Settings) Set(param, value string) error {
	if value == "" {
		return nil
	}

	next := *s
	switch param {
	case "width":
		width, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("width %q is not an integer", value)
		}
		next.Width = width
	case "height":
		height, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("height %q is not an integer", value)
		}
		next.Height = height
	case "theme":
		next.Theme = value
	case "timespan":
		timespan, err := ParseISODuration(value)
		if err != nil {
			return err
		}
		next.Timespan = timespan
	case "timezone":
		next.Timezone = value
	default:
		return fmt.Errorf("unknown default parameter %q", param)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

// Get returns the chat string form of one default parameter, used both as
// the parser fallback and in subcommand help text.
func (s *Settings) Get(param string) string {
	switch param {
	case "width":
		return strconv.Itoa(s.Width)
	case "height":
		return strconv.Itoa(s.Height)
	case "theme":
		return s.Theme
	case "timespan":
		return FormatISODuration(s.Timespan)
	case "timezone":
		return s.Timezone
	}
	return ""
}
