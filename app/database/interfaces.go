package database

type ShowRepository interface {
	UpsertShow(show Show) error
	UpdateTotalSeasons(tmdbID, totalSeasons int) error
	ArchiveShow(tmdbID int) error
	GetShow(tmdbID int) (*Show, error)
	ListShows() ([]Show, error)
	GetShowCount() (int, error)
}

type EpisodeRepository interface {
	UpsertEpisode(episode Episode) error
	ListEpisodes(tmdbID int) ([]Episode, error)
	GetEpisodesByAirDate(date string) ([]DigestEntry, error)
	GetEpisodeCount(tmdbID int) (int, error)
}

type TaskRepository interface {
	CreateTask(task Task) error
	GetPendingTasks(taskType string) ([]Task, error)
	GetTask(id int64) (*Task, error)
	HasEpisodeTask(tmdbID int, episodeID string) (bool, error)
	HasOrganizeTask(tmdbID int) (bool, error)
	CompleteTask(id int64) error
	DeleteTask(id int64) error
}
