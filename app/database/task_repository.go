package database

import (
	"database/sql"
	"fmt"
)

// SQLTaskRepository handles database operations for pending tasks
type SQLTaskRepository struct {
	db *DB
}

var _ TaskRepository = (*SQLTaskRepository)(nil)

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

// CreateTask inserts a new pending task
func (r *SQLTaskRepository) CreateTask(task Task) error {
	_, err := r.db.Exec(`
		INSERT INTO tasks (tmdb_id, task_type, episode_id, description, completed, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, task.TMDBID, task.Type, task.EpisodeID, task.Description, task.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetPendingTasks returns pending tasks of the given type, newest
// first, joined with their show's display fields.
func (r *SQLTaskRepository) GetPendingTasks(taskType string) ([]Task, error) {
	rows, err := r.db.Query(`
		SELECT t.id, t.tmdb_id, s.name, s.resource_time, t.task_type,
		       t.episode_id, t.description, t.completed, t.created_at
		FROM tasks t
		JOIN shows s ON t.tmdb_id = s.tmdb_id
		WHERE t.completed = 0 AND t.task_type = ?
		ORDER BY t.created_at DESC
	`, taskType)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var task Task
		err := rows.Scan(&task.ID, &task.TMDBID, &task.ShowName, &task.ResourceTime,
			&task.Type, &task.EpisodeID, &task.Description, &task.Completed, &task.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// GetTask returns the task with the given id, or nil when unknown
func (r *SQLTaskRepository) GetTask(id int64) (*Task, error) {
	var task Task
	err := r.db.QueryRow(`
		SELECT t.id, t.tmdb_id, s.name, s.resource_time, t.task_type,
		       t.episode_id, t.description, t.completed, t.created_at
		FROM tasks t
		JOIN shows s ON t.tmdb_id = s.tmdb_id
		WHERE t.id = ?
	`, id).Scan(&task.ID, &task.TMDBID, &task.ShowName, &task.ResourceTime,
		&task.Type, &task.EpisodeID, &task.Description, &task.Completed, &task.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// HasEpisodeTask reports whether any task, completed or not, exists
// for the given episode. Completed tasks count so a fetched episode is
// never re-announced.
func (r *SQLTaskRepository) HasEpisodeTask(tmdbID int, episodeID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM tasks
		WHERE tmdb_id = ? AND task_type = ? AND episode_id = ?
	`, tmdbID, TaskUpdate, episodeID).Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check episode task: %w", err)
	}

	return count > 0, nil
}

// HasOrganizeTask reports whether an organize task, completed or not,
// exists for the given show.
func (r *SQLTaskRepository) HasOrganizeTask(tmdbID int) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM tasks
		WHERE tmdb_id = ? AND task_type = ?
	`, tmdbID, TaskOrganize).Scan(&count)

	if err != nil {
		return false, fmt.Errorf("failed to check organize task: %w", err)
	}

	return count > 0, nil
}

// CompleteTask marks a task as completed
func (r *SQLTaskRepository) CompleteTask(id int64) error {
	_, err := r.db.Exec("UPDATE tasks SET completed = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}

// DeleteTask removes a task by its id
func (r *SQLTaskRepository) DeleteTask(id int64) error {
	_, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
