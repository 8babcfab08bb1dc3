package tracker

import (
	"time"

	"github.com/xc9973/tv-tracker/app/notify"
	"github.com/xc9973/tv-tracker/app/tmdb"
)

// MetadataProvider is the read-only surface of the TMDB client the
// tracker depends on. Callers treat any error as "no result" after
// logging it; a provider failure never aborts a flow.
type MetadataProvider interface {
	Search(query string) ([]tmdb.SearchResult, error)
	GetShowDetails(tmdbID int) (*tmdb.ShowDetails, error)
	GetSeasonEpisodes(tmdbID, seasonNumber int) ([]tmdb.Episode, error)
}

var _ MetadataProvider = (*tmdb.Client)(nil)

// Notifier delivers a rendered report. Best effort: the digest logs a
// delivery failure and carries on.
type Notifier interface {
	Send(text string) error
	SendTest(now time.Time) error
}

var _ Notifier = (*notify.TelegramNotifier)(nil)
