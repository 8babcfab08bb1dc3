package tracker

import (
	"log/slog"

	"github.com/xc9973/tv-tracker/app/database"
)

// Syncer pulls a show's current metadata and latest-season episode
// list from the provider and merges it into the local catalog. A sync
// is idempotent and non-incremental: it always re-fetches and
// re-writes the entire latest season, trading bandwidth for
// self-healing against partial prior failures.
type Syncer struct {
	provider MetadataProvider
	shows    database.ShowRepository
	episodes database.EpisodeRepository
	taskGen  *TaskGenerator
}

func NewSyncer(provider MetadataProvider, shows database.ShowRepository,
	episodes database.EpisodeRepository, taskGen *TaskGenerator) *Syncer {
	return &Syncer{
		provider: provider,
		shows:    shows,
		episodes: episodes,
		taskGen:  taskGen,
	}
}

// Sync refreshes the latest season of one show and feeds the fresh
// details to the task generator. Provider failures make the whole call
// a no-op; a single bad episode row is logged and skipped without
// aborting the rest of the season.
func (s *Syncer) Sync(tmdbID int, name string) {
	slog.Info("Syncing show", "show", name, "tmdb_id", tmdbID)

	details, err := s.provider.GetShowDetails(tmdbID)
	if err != nil {
		slog.Warn("Show details unavailable, skipping sync", "show", name, "tmdb_id", tmdbID, "error", err)
		return
	}

	latest := details.NumberOfSeasons
	if latest < 1 {
		latest = 1
	}

	stored, err := s.shows.GetShow(tmdbID)
	if err == nil && stored != nil {
		if stored.TotalSeasons != nil && *stored.TotalSeasons != latest {
			// Older-season rows are never purged; they go stale when the
			// season count moves. Flag it so the retention question stays
			// visible.
			slog.Warn("Season count changed, previously synced seasons may be stale",
				"show", name, "tmdb_id", tmdbID,
				"stored_seasons", *stored.TotalSeasons, "latest_season", latest)
		}
	}

	if err := s.shows.UpdateTotalSeasons(tmdbID, latest); err != nil {
		slog.Warn("Failed to update season count", "show", name, "tmdb_id", tmdbID, "error", err)
	}

	episodes, err := s.provider.GetSeasonEpisodes(tmdbID, latest)
	if err != nil {
		slog.Warn("Season episodes unavailable", "show", name, "tmdb_id", tmdbID, "season", latest, "error", err)
		return
	}

	upserted := 0
	for _, ep := range episodes {
		err := s.episodes.UpsertEpisode(database.Episode{
			TMDBID:   tmdbID,
			Season:   ep.SeasonNumber,
			Episode:  ep.EpisodeNumber,
			Title:    ep.Name,
			Overview: ep.Overview,
			AirDate:  ep.AirDate,
		})
		if err != nil {
			slog.Warn("Failed to upsert episode", "show", name, "tmdb_id", tmdbID,
				"season", ep.SeasonNumber, "episode", ep.EpisodeNumber, "error", err)
			continue
		}
		upserted++
	}

	if stored != nil {
		s.taskGen.Generate(*stored, details)
	}

	slog.Info("Sync completed", "show", name, "tmdb_id", tmdbID, "season", latest, "episodes", upserted)
}

// RefreshAll re-syncs every active subscription sequentially. Archived
// shows are skipped; a failing show never aborts the rest of the run.
func (s *Syncer) RefreshAll() {
	shows, err := s.shows.ListShows()
	if err != nil {
		slog.Error("Failed to list shows for refresh", "error", err)
		return
	}

	slog.Info("Refreshing all subscriptions", "count", len(shows))
	for _, show := range shows {
		if show.Archived {
			continue
		}
		s.Sync(show.TMDBID, show.Name)
	}
}
