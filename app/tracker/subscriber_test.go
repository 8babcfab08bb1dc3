package tracker

import (
	"testing"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tmdb"
)

func newTestSubscriber(t *testing.T, provider *fakeProvider) (*Subscriber, database.ShowRepository, database.EpisodeRepository) {
	t.Helper()
	syncer, showRepo, episodeRepo, _ := newTestSyncer(t, provider)
	return NewSubscriber(provider, showRepo, syncer), showRepo, episodeRepo
}

func TestSubscriber_RejectsNonNumericInput(t *testing.T) {
	provider := &fakeProvider{}
	subscriber, showRepo, _ := newTestSubscriber(t, provider)

	for _, input := range []string{"abc", "", "12x", "-5", "0", "1.5"} {
		show, err := subscriber.Subscribe(input)
		if err != nil {
			t.Errorf("Subscribe(%q) returned error: %v", input, err)
		}
		if show != nil {
			t.Errorf("Subscribe(%q) returned a show, expected nil", input)
		}
	}

	if provider.detailCalls != 0 {
		t.Errorf("Expected no provider calls for invalid input, got %d", provider.detailCalls)
	}

	count, err := showRepo.GetShowCount()
	if err != nil {
		t.Fatalf("GetShowCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no store mutation for invalid input, got %d rows", count)
	}
}

func TestSubscriber_ProviderFailureIsSilentNoOp(t *testing.T) {
	provider := &fakeProvider{details: map[int]*tmdb.ShowDetails{}}
	subscriber, showRepo, _ := newTestSubscriber(t, provider)

	show, err := subscriber.Subscribe("1399")
	if err != nil {
		t.Errorf("Subscribe returned error on provider failure: %v", err)
	}
	if show != nil {
		t.Errorf("Expected nil show on provider failure")
	}

	count, _ := showRepo.GetShowCount()
	if count != 0 {
		t.Errorf("Expected no rows after failed subscription, got %d", count)
	}
}

func TestSubscriber_StoresDerivedFields(t *testing.T) {
	provider := &fakeProvider{
		details: map[int]*tmdb.ShowDetails{
			1399: {
				ID:               1399,
				Name:             "Game of Thrones",
				Status:           "Returning Series",
				OriginCountry:    []string{"US"},
				NumberOfSeasons:  3,
				NextEpisodeToAir: &tmdb.EpisodeStub{AirDate: "2024-05-01"},
			},
		},
	}
	subscriber, showRepo, _ := newTestSubscriber(t, provider)

	show, err := subscriber.Subscribe("1399")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if show == nil {
		t.Fatal("Subscribe returned nil show")
	}

	stored, err := showRepo.GetShow(1399)
	if err != nil {
		t.Fatalf("GetShow failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Show not stored")
	}

	if stored.Name != "Game of Thrones" {
		t.Errorf("Expected name 'Game of Thrones', got %q", stored.Name)
	}
	if stored.Status != StatusOngoing {
		t.Errorf("Expected status %q, got %q", StatusOngoing, stored.Status)
	}
	if stored.ResourceTime != "18:00" {
		t.Errorf("Expected resource time '18:00', got %q", stored.ResourceTime)
	}
	if stored.NextAirDate != "2024-05-01" {
		t.Errorf("Expected next air date '2024-05-01', got %q", stored.NextAirDate)
	}
	if stored.TotalSeasons == nil || *stored.TotalSeasons != 3 {
		t.Errorf("Expected total seasons 3 after first sync, got %v", stored.TotalSeasons)
	}
}

func TestSubscriber_NextAirDateFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		details  tmdb.ShowDetails
		expected string
	}{
		{
			name: "prefers next episode",
			details: tmdb.ShowDetails{
				Status:           "Returning Series",
				NextEpisodeToAir: &tmdb.EpisodeStub{AirDate: "2024-05-01"},
				LastEpisodeToAir: &tmdb.EpisodeStub{AirDate: "2024-04-24"},
			},
			expected: "2024-05-01",
		},
		{
			name: "falls back to last aired",
			details: tmdb.ShowDetails{
				Status:           "Returning Series",
				LastEpisodeToAir: &tmdb.EpisodeStub{AirDate: "2024-04-24"},
			},
			expected: "2024-04-24",
		},
		{
			name:     "unknown when neither present",
			details:  tmdb.ShowDetails{Status: "Returning Series"},
			expected: database.DateUnknown,
		},
		{
			name: "ended overrides any date",
			details: tmdb.ShowDetails{
				Status:           "Ended",
				NextEpisodeToAir: &tmdb.EpisodeStub{AirDate: "2024-05-01"},
			},
			expected: database.DateEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show := buildShow(&tt.details)
			if show.NextAirDate != tt.expected {
				t.Errorf("Expected next air date %q, got %q", tt.expected, show.NextAirDate)
			}
		})
	}
}

func TestSubscriber_ResubscribeKeepsOriginalName(t *testing.T) {
	provider := &fakeProvider{
		details: map[int]*tmdb.ShowDetails{
			100: {
				ID:              100,
				Name:            "First Title",
				Status:          "Returning Series",
				OriginCountry:   []string{"JP"},
				NumberOfSeasons: 1,
			},
		},
	}
	subscriber, showRepo, _ := newTestSubscriber(t, provider)

	if _, err := subscriber.Subscribe("100"); err != nil {
		t.Fatalf("First subscribe failed: %v", err)
	}

	// Provider now reports a renamed, ended show
	provider.details[100] = &tmdb.ShowDetails{
		ID:              100,
		Name:            "Renamed Title",
		Status:          "Ended",
		OriginCountry:   []string{"US"},
		NumberOfSeasons: 2,
	}

	if _, err := subscriber.Subscribe("100"); err != nil {
		t.Fatalf("Resubscribe failed: %v", err)
	}

	count, _ := showRepo.GetShowCount()
	if count != 1 {
		t.Errorf("Expected exactly one row after resubscription, got %d", count)
	}

	stored, _ := showRepo.GetShow(100)
	if stored == nil {
		t.Fatal("Show not found after resubscription")
	}
	if stored.Name != "First Title" {
		t.Errorf("Name should be preserved from first subscription, got %q", stored.Name)
	}
	if stored.Status != StatusEnded {
		t.Errorf("Status should be updated on resubscription, got %q", stored.Status)
	}
	if stored.ResourceTime != "18:00" {
		t.Errorf("Resource time should be updated on resubscription, got %q", stored.ResourceTime)
	}
	if stored.NextAirDate != database.DateEnded {
		t.Errorf("Next air date should be %q for an ended show, got %q", database.DateEnded, stored.NextAirDate)
	}
}
