package tracker

import (
	"testing"
)

func TestInferReleaseTime(t *testing.T) {
	tests := []struct {
		country  string
		expected string
	}{
		{"US", "18:00"},
		{"GB", "18:00"},
		{"CA", "18:00"},
		{"CN", "20:00"},
		{"TW", "20:00"},
		{"JP", "23:00"},
		{"KR", "23:00"},
		{"FR", "unknown"},
		{"", "unknown"},
		{"us", "18:00"},
		{" jp ", "23:00"},
	}

	for _, tt := range tests {
		result := InferReleaseTime(tt.country)
		if result != tt.expected {
			t.Errorf("InferReleaseTime(%q) = %q, expected %q", tt.country, result, tt.expected)
		}
	}
}

func TestTranslateStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Returning Series", StatusOngoing},
		{"Ended", StatusEnded},
		{"Canceled", StatusCanceled},
		{"Pilot", StatusPilot},
		{"In Production", StatusInProduction},
		{"", StatusUnknown},
		{"Planned", "Planned"}, // unrecognized raw values pass through
	}

	for _, tt := range tests {
		result := TranslateStatus(tt.raw)
		if result != tt.expected {
			t.Errorf("TranslateStatus(%q) = %q, expected %q", tt.raw, result, tt.expected)
		}
	}
}

func TestReleaseTimeMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"18:00", 1080},
		{"23:59", 1439},
		{"unknown", 1440},
		{"", 1440},
		{"25:00", 1440},
		{"12:61", 1440},
	}

	for _, tt := range tests {
		result := releaseTimeMinutes(tt.input)
		if result != tt.expected {
			t.Errorf("releaseTimeMinutes(%q) = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}
