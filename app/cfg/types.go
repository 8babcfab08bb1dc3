package cfg

type Cfg struct {
	// TMDB API configuration
	TMDBAPIKey   string
	TMDBLanguage string

	// Telegram configuration
	TelegramBotToken string
	TelegramChatID   string

	// Local storage
	DBPath     string
	RunLogPath string
	ReportFile string
	BackupDir  string

	// Serve mode
	Port         string
	APIAccessKey string
	ReportTime   string

	// Application metadata
	Debug   bool
	Version string
}
