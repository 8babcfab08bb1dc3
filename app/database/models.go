package database

// Sentinel values used where a real date or time-of-day is not known.
const (
	TimeUnknown = "unknown"
	DateUnknown = "unknown"
	DateEnded   = "ended"
)

// Task types on the pending-task board
const (
	TaskUpdate   = "update"
	TaskOrganize = "organize"
)

// Show represents a subscribed TV show. TMDBID is the external
// provider identifier and the primary key.
type Show struct {
	TMDBID       int
	Name         string
	TotalSeasons *int   // nil until the first sync
	ResourceTime string // "HH:MM" or TimeUnknown
	Status       string // ongoing, ended, canceled, pilot, in-production, unknown or raw provider value
	NextAirDate  string // ISO date, DateEnded or DateUnknown
	Archived     bool   // excluded from syncs once organized
}

// Episode represents one installment of a show's latest synced season.
// Episodes without a confirmed air date are never stored.
type Episode struct {
	TMDBID   int
	Season   int
	Episode  int
	Title    string
	Overview string
	AirDate  string // YYYY-MM-DD
}

// DigestEntry is an episode airing on the digest date joined with its
// show's display fields.
type DigestEntry struct {
	ShowName     string
	ResourceTime string
	Season       int
	Episode      int
	Title        string
}

// Task is one pending-board entry: a reminder to fetch an aired
// episode (TaskUpdate) or to organize a finished show's local files
// (TaskOrganize). ShowName and ResourceTime are joined for display.
type Task struct {
	ID           int64
	TMDBID       int
	ShowName     string
	ResourceTime string
	Type         string
	EpisodeID    string // "SxxExx" for update tasks, empty otherwise
	Description  string
	Completed    bool
	CreatedAt    string
}
