package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second
)

// TelegramNotifier delivers text reports to a single preconfigured
// chat. Delivery is a bounded single attempt with no retry.
type TelegramNotifier struct {
	botToken string
	chatID   string
	resty    *resty.Client
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewTelegramNotifier creates a notifier for the given bot and chat
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	restyClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(defaultTimeout)

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		resty:    restyClient,
	}
}

// SetBaseURL overrides the Telegram API base URL, used by tests
func (n *TelegramNotifier) SetBaseURL(baseURL string) {
	n.resty.SetBaseURL(baseURL)
}

// Send posts an HTML-formatted message to the configured chat. It is a
// no-op when no bot token is configured.
func (n *TelegramNotifier) Send(text string) error {
	if n.botToken == "" {
		return nil
	}

	var result telegramResponse
	resp, err := n.resty.R().
		SetBody(telegramMessage{
			ChatID:    n.chatID,
			Text:      text,
			ParseMode: "HTML",
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/bot%s/sendMessage", n.botToken))

	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	if !resp.IsSuccess() || !result.OK {
		return fmt.Errorf("telegram API error: status %s: %s", resp.Status(), result.Description)
	}

	return nil
}

// SendTest sends a timestamped test message to verify the channel
func (n *TelegramNotifier) SendTest(now time.Time) error {
	text := fmt.Sprintf("🔔 <b>Notification test</b>\n\n%s (UTC+8)",
		now.Format("2006-01-02 15:04:05"))
	return n.Send(text)
}
