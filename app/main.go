package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xc9973/tv-tracker/app/api"
	"github.com/xc9973/tv-tracker/app/backup"
	"github.com/xc9973/tv-tracker/app/cfg"
	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/importer"
	"github.com/xc9973/tv-tracker/app/notify"
	"github.com/xc9973/tv-tracker/app/runlog"
	"github.com/xc9973/tv-tracker/app/shell"
	"github.com/xc9973/tv-tracker/app/tmdb"
	"github.com/xc9973/tv-tracker/app/tracker"
)

func main() {
	appCfg, args, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Debug("Database ready", "migration_version", version, "dirty", dirty)

	showRepo := database.NewShowRepository(db)
	episodeRepo := database.NewEpisodeRepository(db)
	taskRepo := database.NewTaskRepository(db)

	provider := tmdb.NewClient(appCfg.TMDBAPIKey, appCfg.TMDBLanguage)
	notifier := notify.NewTelegramNotifier(appCfg.TelegramBotToken, appCfg.TelegramChatID)
	runLog := runlog.New(appCfg.RunLogPath)

	syncer := tracker.NewSyncer(provider, showRepo, episodeRepo, tracker.NewTaskGenerator(taskRepo))
	subscriber := tracker.NewSubscriber(provider, showRepo, syncer)
	digest := tracker.NewDigest(episodeRepo, notifier, runLog, appCfg.ReportFile)
	board := tracker.NewTaskBoard(taskRepo, showRepo)

	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}

	switch mode {
	case "":
		interactive := shell.New(provider, subscriber, syncer, digest, notifier,
			board, showRepo, appCfg.DBPath, os.Stdin, os.Stdout)
		interactive.Run()

	case "auto":
		// The scheduled digest run never propagates failure as a
		// process failure signal.
		if err := digest.Run(); err != nil {
			slog.Error("Digest run failed", "error", err)
		}

	case "serve":
		runServe(appCfg, showRepo, episodeRepo, syncer, digest, board)

	case "import":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: tv-tracker import <file>")
			os.Exit(1)
		}
		runImport(args[1], subscriber)

	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (expected none, auto, serve or import)\n", mode)
		os.Exit(1)
	}
}

// runImport bulk-subscribes every entry of a YAML import file. A
// failing entry is logged and skipped.
func runImport(path string, subscriber *tracker.Subscriber) {
	entries, err := importer.Load(path)
	if err != nil {
		slog.Error("Failed to load import file", "path", path, "error", err)
		os.Exit(1)
	}

	subscribed := 0
	for _, entry := range entries {
		show, err := subscriber.Subscribe(strconv.Itoa(entry.ID))
		if err != nil {
			slog.Warn("Import entry failed", "tmdb_id", entry.ID, "name", entry.Name, "error", err)
			continue
		}
		if show == nil {
			slog.Warn("Import entry skipped", "tmdb_id", entry.ID, "name", entry.Name)
			continue
		}
		subscribed++
	}

	slog.Info("Import completed", "subscribed", subscribed, "total", len(entries))
}

// runServe starts the cron schedule (daily digest, weekly backup) and
// the read-only HTTP API, then blocks until SIGINT/SIGTERM.
func runServe(appCfg *cfg.Cfg, showRepo database.ShowRepository,
	episodeRepo database.EpisodeRepository, syncer *tracker.Syncer,
	digest *tracker.Digest, board *tracker.TaskBoard) {

	digestSpec, err := reportCronSpec(appCfg.ReportTime)
	if err != nil {
		slog.Error("Invalid report time", "report_time", appCfg.ReportTime, "error", err)
		os.Exit(1)
	}

	backupSvc := backup.NewService(appCfg.DBPath, appCfg.BackupDir)

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(digestSpec, func() {
		syncer.RefreshAll()
		if err := digest.Run(); err != nil {
			slog.Error("Scheduled digest failed", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to schedule digest", "error", err)
		os.Exit(1)
	}
	if _, err := c.AddFunc("0 3 * * 0", func() {
		path, err := backupSvc.Run()
		if err != nil {
			slog.Error("Weekly backup failed", "error", err)
			return
		}
		slog.Info("Weekly backup created", "path", path)
	}); err != nil {
		slog.Error("Failed to schedule backup", "error", err)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()
	slog.Info("Scheduler started", "digest", appCfg.ReportTime, "backup", "Sunday 03:00")

	handler := api.NewHandler(showRepo, episodeRepo, digest, board, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("Shutdown complete")
}

// reportCronSpec converts an "HH:MM" delivery time to a cron spec
func reportCronSpec(reportTime string) (string, error) {
	hh, mm, ok := strings.Cut(reportTime, ":")
	if !ok {
		return "", fmt.Errorf("expected HH:MM, got %q", reportTime)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", reportTime)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", reportTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
