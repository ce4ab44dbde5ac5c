package grafana

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseISODuration parses an ISO 8601 duration string such as "PT5M",
// "P1DT12H" or "PT0S" into a time.Duration. Calendar units are fixed-size:
// a month is 30 days and a year is 365 days, matching how the rendered
// time window is computed from "now".
func ParseISODuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	rest := s
	if !strings.HasPrefix(rest, "P") {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q: missing P designator", s)
	}
	rest = rest[1:]

	datePart := rest
	timePart := ""
	if idx := strings.Index(rest, "T"); idx >= 0 {
		datePart = rest[:idx]
		timePart = rest[idx+1:]
		if timePart == "" {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q: empty time component", s)
		}
	}
	if datePart == "" && timePart == "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q: no components", s)
	}

	var total time.Duration

	dateUnits := map[byte]time.Duration{
		'Y': 365 * 24 * time.Hour,
		'M': 30 * 24 * time.Hour,
		'W': 7 * 24 * time.Hour,
		'D': 24 * time.Hour,
	}
	timeUnits := map[byte]time.Duration{
		'H': time.Hour,
		'M': time.Minute,
		'S': time.Second,
	}

	parse := func(part string, units map[byte]time.Duration) error {
		for len(part) > 0 {
			i := 0
			for i < len(part) && (part[i] >= '0' && part[i] <= '9' || part[i] == '.') {
				i++
			}
			if i == 0 || i == len(part) {
				return fmt.Errorf("invalid ISO 8601 duration %q", s)
			}
			unit, ok := units[part[i]]
			if !ok {
				return fmt.Errorf("invalid ISO 8601 duration %q: unexpected designator %q", s, string(part[i]))
			}
			value, err := strconv.ParseFloat(part[:i], 64)
			if err != nil {
				return fmt.Errorf("invalid ISO 8601 duration %q: %w", s, err)
			}
			total += time.Duration(value * float64(unit))
			part = part[i+1:]
		}
		return nil
	}

	if err := parse(datePart, dateUnits); err != nil {
		return 0, err
	}
	if err := parse(timePart, timeUnits); err != nil {
		return 0, err
	}
	return total, nil
}

// FormatISODuration renders a time.Duration back into ISO 8601 form, e.g.
// 90*time.Minute -> "PT1H30M". The zero duration is "PT0S".
func FormatISODuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}

	var b strings.Builder
	b.WriteString("P")

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if d == 0 {
		return b.String()
	}

	b.WriteString("T")
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute

	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	// The seconds component keeps any sub-second remainder, so PT0.5S
	// survives a format/parse round trip instead of collapsing to "PT".
	if d > 0 {
		fmt.Fprintf(&b, "%sS", strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
	}
	return b.String()
}
