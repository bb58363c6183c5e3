// Package notification posts a short run summary to a Telegram channel after
// a report was written.
package notification

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/olegiv/gclogs-analyzer-go/internal/analyzer"
	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
)

const (
	maxMessageLength = 4096
	// minMessageInterval is the minimum time between messages to the channel
	minMessageInterval = 1 * time.Second
	// maxRetries is the maximum number of attempts per message
	maxRetries = 3
	// baseRetryDelay is the initial delay between retries (doubles each attempt)
	baseRetryDelay = 2 * time.Second
)

// TelegramClient sends run summaries to one channel.
type TelegramClient struct {
	bot             *tgbotapi.BotAPI
	send            func(tgbotapi.Chattable) (tgbotapi.Message, error)
	sleep           func(time.Duration)
	channel         int64
	hostname        string
	lastMessageTime time.Time
}

// NewTelegramClient creates a new Telegram client
func NewTelegramClient(botToken string, channel int64) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		// the library puts the token into the request URL of its errors
		return nil, internalerrors.Wrapf(err, "failed to create Telegram bot")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &TelegramClient{
		bot:      bot,
		send:     bot.Send,
		sleep:    time.Sleep,
		channel:  channel,
		hostname: hostname,
	}, nil
}

// SendRunSummary posts the summary of a finished run.
func (t *TelegramClient) SendRunSummary(summary analyzer.Summary, outputPath string) error {
	message := t.formatMessage(summary, outputPath, time.Now())

	if err := t.sendToChannel(t.channel, message); err != nil {
		return fmt.Errorf("failed to send run summary: %w", err)
	}
	return nil
}

// formatMessage renders the summary as MarkdownV2.
func (t *TelegramClient) formatMessage(summary analyzer.Summary, outputPath string, now time.Time) string {
	var msg strings.Builder

	// Header
	msg.WriteString("🧭 *Geocache Finds Report*\n")
	msg.WriteString(fmt.Sprintf("🖥 Host\\: %s\n", escapeMarkdown(t.hostname)))
	msg.WriteString(fmt.Sprintf("📅 Date\\: %s\n", escapeMarkdown(now.Format("2006-01-02 15:04:05"))))
	msg.WriteString(fmt.Sprintf("📄 Report\\: %s\n", escapeMarkdown(filepath.Base(outputPath))))
	if summary.RunID != "" {
		msg.WriteString(fmt.Sprintf("🆔 Run\\: `%s`\n", summary.RunID))
	}
	msg.WriteString("\n")

	// Finds
	msg.WriteString("📋 *Finds*\n")
	msg.WriteString(fmt.Sprintf("• Caches\\: %d\n", summary.Total))
	msg.WriteString(fmt.Sprintf("• Found logs\\: %d\n", summary.FoundLogs))
	if !summary.FirstFound.IsZero() {
		msg.WriteString(fmt.Sprintf("• First find\\: %s\n", escapeMarkdown(summary.FirstFound.Format(report.DateLayout))))
		msg.WriteString(fmt.Sprintf("• Latest find\\: %s\n", escapeMarkdown(summary.LatestFound.Format(report.DateLayout))))
	}
	msg.WriteString("\n")

	// Places
	if summary.Countries > 0 {
		msg.WriteString("🌍 *Countries*\n")
		msg.WriteString(fmt.Sprintf("• Visited\\: %d\n", summary.Countries))
		msg.WriteString(fmt.Sprintf("• Most finds\\: %s \\(%d\\)\n", escapeMarkdown(summary.TopCountry), summary.TopCountryFounds))
		msg.WriteString("\n")
	}

	msg.WriteString(fmt.Sprintf("📊 Sections\\: %d\n", summary.Sections))

	return msg.String()
}

// sendToChannel sends a message to a Telegram channel with rate limiting
func (t *TelegramClient) sendToChannel(channelID int64, message string) error {
	// Split message if it exceeds Telegram's limit
	messages := t.splitMessage(message)

	for _, msg := range messages {
		t.waitForRateLimit()

		msgConfig := tgbotapi.NewMessage(channelID, msg)
		msgConfig.ParseMode = "MarkdownV2"

		if err := t.sendWithRetry(msgConfig); err != nil {
			return err
		}

		t.lastMessageTime = time.Now()
	}

	return nil
}

// waitForRateLimit ensures minimum interval between messages
func (t *TelegramClient) waitForRateLimit() {
	if t.lastMessageTime.IsZero() {
		return
	}

	elapsed := time.Since(t.lastMessageTime)
	if elapsed < minMessageInterval {
		t.sleep(minMessageInterval - elapsed)
	}
}

// sendWithRetry sends a message with exponential backoff retry
func (t *TelegramClient) sendWithRetry(msgConfig tgbotapi.MessageConfig) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		_, err := t.send(msgConfig)
		if err == nil {
			return nil
		}

		lastErr = err

		// Rate limited (429): wait as long as Telegram asks
		if isRateLimitError(err) {
			if retryAfter := extractRetryAfter(err); retryAfter > 0 {
				t.sleep(time.Duration(retryAfter) * time.Second)
				continue
			}
		}

		if attempt < maxRetries {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1)) // 2s, 4s, 8s...
			t.sleep(delay)
		}
	}

	return internalerrors.Wrapf(lastErr, "failed to send message after %d retries", maxRetries)
}

// isRateLimitError checks if the error is a Telegram rate limit error (429)
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") || strings.Contains(errStr, "Too Many Requests")
}

// extractRetryAfter extracts the retry_after value from a rate limit error
func extractRetryAfter(err error) int {
	if err == nil {
		return 0
	}

	// Example: "Too Many Requests: retry after 30"
	errStr := err.Error()
	if idx := strings.Index(strings.ToLower(errStr), "retry after "); idx != -1 {
		remaining := errStr[idx+len("retry after "):]
		var seconds int
		if _, err := fmt.Sscanf(remaining, "%d", &seconds); err == nil {
			return seconds
		}
	}

	// Default to a conservative wait time if we can't extract the value
	return 30
}

// splitMessage splits a long message at line boundaries
func (t *TelegramClient) splitMessage(message string) []string {
	if len(message) <= maxMessageLength {
		return []string{message}
	}

	var messages []string
	lines := strings.Split(message, "\n")
	var currentMsg strings.Builder

	for _, line := range lines {
		if currentMsg.Len()+len(line)+1 > maxMessageLength {
			if currentMsg.Len() > 0 {
				messages = append(messages, currentMsg.String())
				currentMsg.Reset()
			}

			// A single line above the limit is cut into pieces
			if len(line) > maxMessageLength {
				for i := 0; i < len(line); i += maxMessageLength {
					end := min(i+maxMessageLength, len(line))
					messages = append(messages, line[i:end])
				}
				continue
			}
		}

		currentMsg.WriteString(line)
		currentMsg.WriteString("\n")
	}

	if currentMsg.Len() > 0 {
		messages = append(messages, currentMsg.String())
	}

	return messages
}

// markdownSpecialChars must be escaped in MarkdownV2 text, the backslash
// first. See https://core.telegram.org/bots/api#markdownv2-style
var markdownSpecialChars = []string{
	"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!", ":",
}

// escapeMarkdown escapes special characters for Telegram MarkdownV2
func escapeMarkdown(text string) string {
	result := text
	for _, char := range markdownSpecialChars {
		result = strings.ReplaceAll(result, char, "\\"+char)
	}
	return result
}

// GetBotInfo returns information about the bot
func (t *TelegramClient) GetBotInfo() map[string]interface{} {
	username := ""
	if t.bot != nil {
		username = t.bot.Self.UserName
	}
	return map[string]interface{}{
		"username": username,
		"channel":  t.channel,
		"hostname": t.hostname,
	}
}

// Close closes the Telegram client
func (t *TelegramClient) Close() error {
	if t.bot != nil {
		t.bot.StopReceivingUpdates()
	}
	return nil
}
