package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// TMDB API configuration
	TMDBAPIKey   string `long:"tmdb-api-key" env:"TMDB_API_KEY" description:"TMDB API key (required for provider calls)"`
	TMDBLanguage string `long:"tmdb-language" env:"TMDB_LANGUAGE" default:"zh-CN" description:"Response language requested from TMDB"`

	// Telegram configuration
	TelegramBotToken string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token (notifications disabled when empty)"`
	TelegramChatID   string `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat ID for digest delivery"`

	// Local storage
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./tv-tracker.db" description:"Path to the SQLite database file"`
	RunLogPath string `long:"run-log" env:"RUN_LOG" default:"./run_log.txt" description:"Path to the append-only run log"`
	ReportFile string `long:"report-file" env:"REPORT_FILE" default:"./today_report.txt" description:"Path the rendered daily report is written to"`
	BackupDir  string `long:"backup-dir" env:"BACKUP_DIR" default:"./backups" description:"Directory for weekly database backups (serve mode)"`

	// Serve mode
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	ReportTime   string `long:"report-time" env:"REPORT_TIME" default:"08:00" description:"Daily digest delivery time in HH:MM (serve mode)"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line flags and environment variables. It returns
// the loaded configuration plus any remaining positional arguments
// (the invocation mode). A nil Cfg with nil error means help was shown.
func Load() (*Cfg, []string, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		TMDBAPIKey:       raw.TMDBAPIKey,
		TMDBLanguage:     raw.TMDBLanguage,
		TelegramBotToken: raw.TelegramBotToken,
		TelegramChatID:   raw.TelegramChatID,
		DBPath:           raw.DBPath,
		RunLogPath:       raw.RunLogPath,
		ReportFile:       raw.ReportFile,
		BackupDir:        raw.BackupDir,
		Port:             raw.Port,
		APIAccessKey:     raw.APIAccessKey,
		ReportTime:       raw.ReportTime,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	return cfg, args, nil
}
