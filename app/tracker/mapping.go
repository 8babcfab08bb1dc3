package tracker

import (
	"strconv"
	"strings"

	"github.com/xc9973/tv-tracker/app/database"
)

// Display vocabulary for show lifecycle status
const (
	StatusOngoing      = "ongoing"
	StatusEnded        = "ended"
	StatusCanceled     = "canceled"
	StatusPilot        = "pilot"
	StatusInProduction = "in-production"
	StatusUnknown      = "unknown"
)

var statusMap = map[string]string{
	"Returning Series": StatusOngoing,
	"Ended":            StatusEnded,
	"Canceled":         StatusCanceled,
	"Pilot":            StatusPilot,
	"In Production":    StatusInProduction,
}

// TranslateStatus maps a raw TMDB lifecycle status to the display
// vocabulary. Unrecognized raw values pass through unchanged; an
// absent value becomes StatusUnknown.
func TranslateStatus(raw string) string {
	if raw == "" {
		return StatusUnknown
	}
	if mapped, ok := statusMap[raw]; ok {
		return mapped
	}
	return raw
}

// InferReleaseTime derives the expected resource availability time
// from a show's origin country. A display hint only, recomputed on
// subscription but never by a sync.
func InferReleaseTime(country string) string {
	switch strings.ToUpper(strings.TrimSpace(country)) {
	case "US", "GB", "CA":
		return "18:00"
	case "CN", "TW":
		return "20:00"
	case "JP", "KR":
		return "23:00"
	default:
		return database.TimeUnknown
	}
}

// releaseTimeMinutes converts an "HH:MM" hint to minutes since
// midnight for ordering. Sentinels and malformed values sort last.
func releaseTimeMinutes(t string) int {
	const sortLast = 24 * 60

	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return sortLast
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return sortLast
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return sortLast
	}
	return hour*60 + minute
}
