package database

import (
	"database/sql"
	"fmt"
)

// SQLShowRepository handles database operations for shows
type SQLShowRepository struct {
	db *DB
}

var _ ShowRepository = (*SQLShowRepository)(nil)

// NewShowRepository creates a new show repository
func NewShowRepository(db *DB) *SQLShowRepository {
	return &SQLShowRepository{db: db}
}

// UpsertShow inserts a show or, on primary-key conflict, updates the
// derived fields. The name column is set only on first insert:
// resubscription keeps the original display title.
func (r *SQLShowRepository) UpsertShow(show Show) error {
	_, err := r.db.Exec(`
		INSERT INTO shows (tmdb_id, name, resource_time, status, next_air_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (tmdb_id) DO UPDATE SET
			resource_time = excluded.resource_time,
			status = excluded.status,
			next_air_date = excluded.next_air_date
	`, show.TMDBID, show.Name, show.ResourceTime, show.Status, show.NextAirDate)

	if err != nil {
		return fmt.Errorf("failed to upsert show: %w", err)
	}

	return nil
}

// ArchiveShow marks a show as archived, excluding it from future
// refresh runs. A no-op when the id is not subscribed.
func (r *SQLShowRepository) ArchiveShow(tmdbID int) error {
	_, err := r.db.Exec(`
		UPDATE shows SET archived = 1 WHERE tmdb_id = ?
	`, tmdbID)

	if err != nil {
		return fmt.Errorf("failed to archive show: %w", err)
	}

	return nil
}

// UpdateTotalSeasons sets the season count for a known show. It is a
// no-op when the id is not subscribed.
func (r *SQLShowRepository) UpdateTotalSeasons(tmdbID, totalSeasons int) error {
	_, err := r.db.Exec(`
		UPDATE shows SET total_seasons = ? WHERE tmdb_id = ?
	`, totalSeasons, tmdbID)

	if err != nil {
		return fmt.Errorf("failed to update total seasons: %w", err)
	}

	return nil
}

// GetShow returns the show for the given TMDB id, or nil when unknown
func (r *SQLShowRepository) GetShow(tmdbID int) (*Show, error) {
	var show Show
	var totalSeasons sql.NullInt64

	err := r.db.QueryRow(`
		SELECT tmdb_id, name, total_seasons, resource_time, status, next_air_date, archived
		FROM shows WHERE tmdb_id = ?
	`, tmdbID).Scan(&show.TMDBID, &show.Name, &totalSeasons,
		&show.ResourceTime, &show.Status, &show.NextAirDate, &show.Archived)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	if totalSeasons.Valid {
		n := int(totalSeasons.Int64)
		show.TotalSeasons = &n
	}

	return &show, nil
}

// ListShows returns all subscribed shows ordered by name
func (r *SQLShowRepository) ListShows() ([]Show, error) {
	rows, err := r.db.Query(`
		SELECT tmdb_id, name, total_seasons, resource_time, status, next_air_date, archived
		FROM shows
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}
	defer rows.Close()

	var shows []Show
	for rows.Next() {
		var show Show
		var totalSeasons sql.NullInt64
		err := rows.Scan(&show.TMDBID, &show.Name, &totalSeasons,
			&show.ResourceTime, &show.Status, &show.NextAirDate, &show.Archived)
		if err != nil {
			return nil, fmt.Errorf("failed to scan show row: %w", err)
		}
		if totalSeasons.Valid {
			n := int(totalSeasons.Int64)
			show.TotalSeasons = &n
		}
		shows = append(shows, show)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating show rows: %w", err)
	}

	return shows, nil
}

// GetShowCount returns the number of subscribed shows
func (r *SQLShowRepository) GetShowCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM shows").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get show count: %w", err)
	}
	return count, nil
}
