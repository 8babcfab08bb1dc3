package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tracker"
)

func NewHandler(showRepo database.ShowRepository, episodeRepo database.EpisodeRepository,
	digest *tracker.Digest, board *tracker.TaskBoard, version string) *Handler {
	return &Handler{
		showRepo:    showRepo,
		episodeRepo: episodeRepo,
		digest:      digest,
		board:       board,
		version:     version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	count, err := h.showRepo.GetShowCount()
	if err != nil {
		slog.Error("Database error", "operation", "show_count", "error", err)
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	health["shows"] = count

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListShows(c *gin.Context) {
	shows, err := h.showRepo.ListShows()
	if err != nil {
		slog.Error("Database error", "operation", "list_shows", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]showResponse, 0, len(shows))
	for _, show := range shows {
		resp = append(resp, showResponse{
			TMDBID:       show.TMDBID,
			Name:         show.Name,
			TotalSeasons: show.TotalSeasons,
			ResourceTime: show.ResourceTime,
			Status:       show.Status,
			NextAirDate:  show.NextAirDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{"shows": resp})
}

func (h *Handler) GetShowEpisodes(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("id"))
	if err != nil || tmdbID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	show, err := h.showRepo.GetShow(tmdbID)
	if err != nil {
		slog.Error("Database error", "operation", "get_show", "tmdb_id", tmdbID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if show == nil {
		c.Status(http.StatusNotFound)
		return
	}

	episodes, err := h.episodeRepo.ListEpisodes(tmdbID)
	if err != nil {
		slog.Error("Database error", "operation", "list_episodes", "tmdb_id", tmdbID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]episodeResponse, 0, len(episodes))
	for _, ep := range episodes {
		resp = append(resp, episodeResponse{
			Season:   ep.Season,
			Episode:  ep.Episode,
			Title:    ep.Title,
			Overview: ep.Overview,
			AirDate:  ep.AirDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"show":     show.Name,
		"episodes": resp,
	})
}

// GetTasks returns the pending-task dashboard grouped by type
func (h *Handler) GetTasks(c *gin.Context) {
	dashboard, err := h.board.Dashboard()
	if err != nil {
		slog.Error("Database error", "operation", "task_dashboard", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"update_tasks":   toTaskResponses(dashboard.UpdateTasks),
		"organize_tasks": toTaskResponses(dashboard.OrganizeTasks),
	})
}

// CompleteTask marks a task as done; completing an organize task also
// archives the show.
func (h *Handler) CompleteTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.board.Complete(taskID); err != nil {
		slog.Error("Failed to complete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// PostponeTask moves a task to tomorrow
func (h *Handler) PostponeTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || taskID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.board.Postpone(taskID); err != nil {
		slog.Error("Failed to postpone task", "task_id", taskID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func toTaskResponses(tasks []database.Task) []taskResponse {
	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, taskResponse{
			ID:           task.ID,
			TMDBID:       task.TMDBID,
			Show:         task.ShowName,
			ResourceTime: task.ResourceTime,
			Type:         task.Type,
			EpisodeID:    task.EpisodeID,
			Description:  task.Description,
			CreatedAt:    task.CreatedAt,
		})
	}
	return resp
}

// GetDigestPreview renders today's digest without delivering it
func (h *Handler) GetDigestPreview(c *gin.Context) {
	today := h.digest.Today()

	entries, err := h.episodeRepo.GetEpisodesByAirDate(today)
	if err != nil {
		slog.Error("Database error", "operation", "digest_preview", "date", today, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    today,
		"updates": len(entries),
		"report":  tracker.BuildReport(today, entries),
	})
}
