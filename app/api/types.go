package api

import (
	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tracker"
)

type Handler struct {
	showRepo    database.ShowRepository
	episodeRepo database.EpisodeRepository
	digest      *tracker.Digest
	board       *tracker.TaskBoard
	version     string
}

type showResponse struct {
	TMDBID       int    `json:"tmdb_id"`
	Name         string `json:"name"`
	TotalSeasons *int   `json:"total_seasons"`
	ResourceTime string `json:"resource_time"`
	Status       string `json:"status"`
	NextAirDate  string `json:"next_air_date"`
}

type episodeResponse struct {
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
	Title    string `json:"title"`
	Overview string `json:"overview"`
	AirDate  string `json:"air_date"`
}

type taskResponse struct {
	ID           int64  `json:"id"`
	TMDBID       int    `json:"tmdb_id"`
	Show         string `json:"show"`
	ResourceTime string `json:"resource_time"`
	Type         string `json:"type"`
	EpisodeID    string `json:"episode_id,omitempty"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}
