package grafana

import (
	"testing"
	"time"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "zero seconds",
			input: "PT0S",
			want:  0,
		},
		{
			name:  "minutes",
			input: "PT5M",
			want:  5 * time.Minute,
		},
		{
			name:  "hours and minutes",
			input: "PT1H30M",
			want:  90 * time.Minute,
		},
		{
			name:  "days and hours",
			input: "P1DT12H",
			want:  36 * time.Hour,
		},
		{
			name:  "weeks",
			input: "P2W",
			want:  14 * 24 * time.Hour,
		},
		{
			name:  "fractional seconds",
			input: "PT0.5S",
			want:  500 * time.Millisecond,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing P",
			input:   "T5M",
			wantErr: true,
		},
		{
			name:    "bare P",
			input:   "P",
			wantErr: true,
		},
		{
			name:    "trailing T",
			input:   "P1DT",
			wantErr: true,
		},
		{
			name:    "date designator in time part",
			input:   "PT1D",
			wantErr: true,
		},
		{
			name:    "missing designator",
			input:   "PT5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseISODuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseISODuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatISODuration(t *testing.T) {
	tests := []struct {
		name  string
		input time.Duration
		want  string
	}{
		{
			name:  "zero",
			input: 0,
			want:  "PT0S",
		},
		{
			name:  "minutes",
			input: 5 * time.Minute,
			want:  "PT5M",
		},
		{
			name:  "hours and minutes",
			input: 90 * time.Minute,
			want:  "PT1H30M",
		},
		{
			name:  "whole days",
			input: 48 * time.Hour,
			want:  "P2D",
		},
		{
			name:  "days with remainder",
			input: 36 * time.Hour,
			want:  "P1DT12H",
		},
		{
			name:  "sub-second",
			input: 500 * time.Millisecond,
			want:  "PT0.5S",
		},
		{
			name:  "seconds with fraction",
			input: 1500 * time.Millisecond,
			want:  "PT1.5S",
		},
		{
			name:  "minutes with fractional seconds",
			input: 90*time.Second + 250*time.Millisecond,
			want:  "PT1M30.25S",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatISODuration(tt.input); got != tt.want {
				t.Errorf("FormatISODuration(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, d := range []time.Duration{
		0,
		250 * time.Millisecond,
		500 * time.Millisecond,
		1500 * time.Millisecond,
		time.Second,
		5 * time.Minute,
		90*time.Second + 500*time.Millisecond,
		36 * time.Hour,
		14 * 24 * time.Hour,
	} {
		formatted := FormatISODuration(d)
		parsed, err := ParseISODuration(formatted)
		if err != nil {
			t.Fatalf("ParseISODuration(%q) returned error: %v", formatted, err)
		}
		if parsed != d {
			t.Errorf("round trip of %v through %q = %v", d, formatted, parsed)
		}
	}
}
