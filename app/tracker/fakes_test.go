package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tmdb"
)

// newTestDB opens an in-memory catalog store with migrations applied
func newTestDB(t *testing.T) (*database.DB, database.ShowRepository, database.EpisodeRepository) {
	t.Helper()

	db, err := database.NewConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db, database.NewShowRepository(db), database.NewEpisodeRepository(db)
}

// newTestSyncer wires a syncer with a real in-memory store and a task
// generator on the default clock
func newTestSyncer(t *testing.T, provider *fakeProvider) (*Syncer, database.ShowRepository, database.EpisodeRepository, database.TaskRepository) {
	t.Helper()
	db, showRepo, episodeRepo := newTestDB(t)
	taskRepo := database.NewTaskRepository(db)
	syncer := NewSyncer(provider, showRepo, episodeRepo, NewTaskGenerator(taskRepo))
	return syncer, showRepo, episodeRepo, taskRepo
}

type fakeProvider struct {
	searchCalls int
	detailCalls int
	seasonCalls int

	searchResults []tmdb.SearchResult
	details       map[int]*tmdb.ShowDetails
	seasons       map[string][]tmdb.Episode
	err           error
}

func (f *fakeProvider) Search(query string) ([]tmdb.SearchResult, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.searchResults, nil
}

func (f *fakeProvider) GetShowDetails(tmdbID int) (*tmdb.ShowDetails, error) {
	f.detailCalls++
	if f.err != nil {
		return nil, f.err
	}
	details, ok := f.details[tmdbID]
	if !ok {
		return nil, fmt.Errorf("TMDB API error fetching show %d: status 404", tmdbID)
	}
	return details, nil
}

func (f *fakeProvider) GetSeasonEpisodes(tmdbID, seasonNumber int) ([]tmdb.Episode, error) {
	f.seasonCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.seasons[fmt.Sprintf("%d-%d", tmdbID, seasonNumber)], nil
}

type fakeNotifier struct {
	sent    []string
	sendErr error
}

func (f *fakeNotifier) Send(text string) error {
	f.sent = append(f.sent, text)
	return f.sendErr
}

func (f *fakeNotifier) SendTest(now time.Time) error {
	return f.Send("test " + now.Format("2006-01-02"))
}
