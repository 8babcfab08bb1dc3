package tracker

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tmdb"
)

// Subscriber handles the subscription flow: fetch metadata, derive the
// display fields, upsert the show row and run a full first sync.
type Subscriber struct {
	provider MetadataProvider
	shows    database.ShowRepository
	syncer   *Syncer
}

func NewSubscriber(provider MetadataProvider, shows database.ShowRepository,
	syncer *Syncer) *Subscriber {
	return &Subscriber{
		provider: provider,
		shows:    shows,
		syncer:   syncer,
	}
}

// Subscribe subscribes to a show by its TMDB id given as raw user
// input. Non-numeric input is rejected before any provider call or
// store mutation; provider failures abort silently. The returned show
// is nil whenever nothing was subscribed.
func (s *Subscriber) Subscribe(rawID string) (*database.Show, error) {
	tmdbID, err := strconv.Atoi(rawID)
	if err != nil || tmdbID <= 0 {
		slog.Debug("Rejected non-numeric subscription input", "input", rawID)
		return nil, nil
	}

	details, err := s.provider.GetShowDetails(tmdbID)
	if err != nil {
		slog.Warn("Show details unavailable, subscription skipped", "tmdb_id", tmdbID, "error", err)
		return nil, nil
	}

	show := buildShow(details)
	if err := s.shows.UpsertShow(show); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	slog.Info("Subscribed", "show", show.Name, "tmdb_id", show.TMDBID, "status", show.Status)

	s.syncer.Sync(show.TMDBID, show.Name)

	return &show, nil
}

// buildShow derives the stored display fields from provider details
func buildShow(details *tmdb.ShowDetails) database.Show {
	status := TranslateStatus(details.Status)

	nextAirDate := database.DateUnknown
	if details.NextEpisodeToAir != nil && details.NextEpisodeToAir.AirDate != "" {
		nextAirDate = details.NextEpisodeToAir.AirDate
	} else if details.LastEpisodeToAir != nil && details.LastEpisodeToAir.AirDate != "" {
		nextAirDate = details.LastEpisodeToAir.AirDate
	}
	if status == StatusEnded {
		nextAirDate = database.DateEnded
	}

	country := ""
	if len(details.OriginCountry) > 0 {
		country = details.OriginCountry[0]
	}

	return database.Show{
		TMDBID:       details.ID,
		Name:         details.Name,
		ResourceTime: InferReleaseTime(country),
		Status:       status,
		NextAirDate:  nextAirDate,
	}
}
