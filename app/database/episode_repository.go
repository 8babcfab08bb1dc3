package database

import (
	"database/sql"
	"fmt"
)

// SQLEpisodeRepository handles database operations for episodes
type SQLEpisodeRepository struct {
	db *DB
}

var _ EpisodeRepository = (*SQLEpisodeRepository)(nil)

// NewEpisodeRepository creates a new episode repository
func NewEpisodeRepository(db *DB) *SQLEpisodeRepository {
	return &SQLEpisodeRepository{db: db}
}

// UpsertEpisode inserts an episode or replaces its title, overview and
// air date on composite-key conflict.
func (r *SQLEpisodeRepository) UpsertEpisode(episode Episode) error {
	_, err := r.db.Exec(`
		INSERT INTO episodes (tmdb_id, season, episode, title, overview, air_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tmdb_id, season, episode) DO UPDATE SET
			title = excluded.title,
			overview = excluded.overview,
			air_date = excluded.air_date
	`, episode.TMDBID, episode.Season, episode.Episode,
		episode.Title, episode.Overview, episode.AirDate)

	if err != nil {
		return fmt.Errorf("failed to upsert episode: %w", err)
	}

	return nil
}

// ListEpisodes returns all stored episodes for a show
func (r *SQLEpisodeRepository) ListEpisodes(tmdbID int) ([]Episode, error) {
	rows, err := r.db.Query(`
		SELECT tmdb_id, season, episode, COALESCE(title, ''), COALESCE(overview, ''), air_date
		FROM episodes
		WHERE tmdb_id = ?
		ORDER BY season, episode
	`, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	return scanEpisodes(rows)
}

// GetEpisodesByAirDate returns the digest entries for episodes airing
// on the given date, joined with their show's display fields.
func (r *SQLEpisodeRepository) GetEpisodesByAirDate(date string) ([]DigestEntry, error) {
	rows, err := r.db.Query(`
		SELECT s.name, s.resource_time, e.season, e.episode, COALESCE(e.title, '')
		FROM episodes e
		JOIN shows s ON e.tmdb_id = s.tmdb_id
		WHERE e.air_date = ?
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get episodes by air date: %w", err)
	}
	defer rows.Close()

	var entries []DigestEntry
	for rows.Next() {
		var entry DigestEntry
		err := rows.Scan(&entry.ShowName, &entry.ResourceTime,
			&entry.Season, &entry.Episode, &entry.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to scan digest row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating digest rows: %w", err)
	}

	return entries, nil
}

// GetEpisodeCount returns the number of stored episodes for a show
func (r *SQLEpisodeRepository) GetEpisodeCount(tmdbID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM episodes WHERE tmdb_id = ?", tmdbID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get episode count: %w", err)
	}
	return count, nil
}

func scanEpisodes(rows *sql.Rows) ([]Episode, error) {
	var episodes []Episode
	for rows.Next() {
		var ep Episode
		err := rows.Scan(&ep.TMDBID, &ep.Season, &ep.Episode,
			&ep.Title, &ep.Overview, &ep.AirDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode row: %w", err)
		}
		episodes = append(episodes, ep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating episode rows: %w", err)
	}

	return episodes, nil
}
