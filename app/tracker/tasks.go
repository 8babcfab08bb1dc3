package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tmdb"
)

// FormatEpisodeID renders season and episode numbers as "SxxExx"
func FormatEpisodeID(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// TaskGenerator turns sync results into pending-board entries: an
// update task when a tracked episode has aired, an organize task when
// a show has finished. Each episode and each show gets its task at
// most once, completed tasks included, so nothing is re-announced.
type TaskGenerator struct {
	tasks database.TaskRepository
	now   func() time.Time
}

func NewTaskGenerator(tasks database.TaskRepository) *TaskGenerator {
	return &TaskGenerator{tasks: tasks, now: time.Now}
}

// SetNowFunc overrides the clock, used by tests
func (g *TaskGenerator) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		g.now = time.Now
		return
	}
	g.now = fn
}

// Generate inspects a show's fresh provider details and creates any
// missing tasks. Failures are logged and swallowed so task bookkeeping
// never breaks a sync.
func (g *TaskGenerator) Generate(show database.Show, details *tmdb.ShowDetails) {
	created, err := g.episodeTask(show, details.NextEpisodeToAir)
	if err != nil {
		slog.Warn("Failed to generate update task", "show", show.Name, "tmdb_id", show.TMDBID, "error", err)
	}
	if !created {
		// The last-aired pointer covers episodes the next-episode
		// pointer has already moved past.
		if _, err := g.episodeTask(show, details.LastEpisodeToAir); err != nil {
			slog.Warn("Failed to generate update task", "show", show.Name, "tmdb_id", show.TMDBID, "error", err)
		}
	}

	if err := g.organizeTask(show, details.Status); err != nil {
		slog.Warn("Failed to generate organize task", "show", show.Name, "tmdb_id", show.TMDBID, "error", err)
	}
}

// episodeTask creates an update task for the given episode pointer if
// it has aired (today in UTC+8 or earlier) and has no task yet.
func (g *TaskGenerator) episodeTask(show database.Show, stub *tmdb.EpisodeStub) (bool, error) {
	if stub == nil || stub.AirDate == "" {
		return false, nil
	}

	if _, err := time.Parse("2006-01-02", stub.AirDate); err != nil {
		return false, fmt.Errorf("invalid air date %q: %w", stub.AirDate, err)
	}

	today := g.now().In(digestZone).Format("2006-01-02")
	if stub.AirDate > today {
		return false, nil
	}

	episodeID := FormatEpisodeID(stub.SeasonNumber, stub.EpisodeNumber)
	exists, err := g.tasks.HasEpisodeTask(show.TMDBID, episodeID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = g.tasks.CreateTask(database.Task{
		TMDBID:      show.TMDBID,
		Type:        database.TaskUpdate,
		EpisodeID:   episodeID,
		Description: fmt.Sprintf("New episode %s aired %s", episodeID, stub.AirDate),
		CreatedAt:   g.timestamp(),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// organizeTask creates a one-time organize task for a finished show
func (g *TaskGenerator) organizeTask(show database.Show, rawStatus string) error {
	status := TranslateStatus(rawStatus)
	if status != StatusEnded && status != StatusCanceled {
		return nil
	}

	exists, err := g.tasks.HasOrganizeTask(show.TMDBID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return g.tasks.CreateTask(database.Task{
		TMDBID:      show.TMDBID,
		Type:        database.TaskOrganize,
		Description: "Show has finished, organize the local files",
		CreatedAt:   g.timestamp(),
	})
}

func (g *TaskGenerator) timestamp() string {
	return g.now().In(digestZone).Format("2006-01-02 15:04:05")
}

// Dashboard groups the pending board by task type. Slices are never
// nil so the API serializes empty groups as [].
type Dashboard struct {
	UpdateTasks   []database.Task
	OrganizeTasks []database.Task
}

// TaskBoard exposes the pending board: listing, completing and
// postponing tasks. Completing an organize task also archives the
// show, removing it from future refresh runs.
type TaskBoard struct {
	tasks database.TaskRepository
	shows database.ShowRepository
	now   func() time.Time
}

func NewTaskBoard(tasks database.TaskRepository, shows database.ShowRepository) *TaskBoard {
	return &TaskBoard{tasks: tasks, shows: shows, now: time.Now}
}

// SetNowFunc overrides the clock, used by tests
func (b *TaskBoard) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		b.now = time.Now
		return
	}
	b.now = fn
}

// Dashboard returns all pending tasks grouped by type
func (b *TaskBoard) Dashboard() (*Dashboard, error) {
	updates, err := b.tasks.GetPendingTasks(database.TaskUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to get update tasks: %w", err)
	}

	organizes, err := b.tasks.GetPendingTasks(database.TaskOrganize)
	if err != nil {
		return nil, fmt.Errorf("failed to get organize tasks: %w", err)
	}

	if updates == nil {
		updates = []database.Task{}
	}
	if organizes == nil {
		organizes = []database.Task{}
	}

	return &Dashboard{UpdateTasks: updates, OrganizeTasks: organizes}, nil
}

// Complete marks a task as done. Completing an organize task archives
// the associated show.
func (b *TaskBoard) Complete(taskID int64) error {
	task, err := b.tasks.GetTask(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task not found: %d", taskID)
	}

	if err := b.tasks.CompleteTask(taskID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if task.Type == database.TaskOrganize {
		if err := b.shows.ArchiveShow(task.TMDBID); err != nil {
			return fmt.Errorf("failed to archive show: %w", err)
		}
	}

	return nil
}

// Postpone moves a pending task to tomorrow by recreating it with
// tomorrow's date and dropping the original.
func (b *TaskBoard) Postpone(taskID int64) error {
	task, err := b.tasks.GetTask(taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task not found: %d", taskID)
	}

	tomorrow := b.now().In(digestZone).AddDate(0, 0, 1).Format("2006-01-02 15:04:05")
	err = b.tasks.CreateTask(database.Task{
		TMDBID:      task.TMDBID,
		Type:        task.Type,
		EpisodeID:   task.EpisodeID,
		Description: task.Description,
		CreatedAt:   tomorrow,
	})
	if err != nil {
		return fmt.Errorf("failed to create postponed task: %w", err)
	}

	if err := b.tasks.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete original task: %w", err)
	}

	return nil
}
