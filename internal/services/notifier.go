package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/models"
	"go.uber.org/zap"
)

type Notifier interface {
	Notify(ctx context.Context, user models.User, message string) error
}

const defaultTelegramAPIBase = "https://api.telegram.org"

// TelegramNotifier posts every message to a single configured chat.
type TelegramNotifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

func NewTelegramNotifier(botToken string, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultTelegramAPIBase,
		client:   &http.Client{Timeout: 8 * time.Second},
	}
}

// WithAPIBase points the notifier at another Bot API host.
func (notifier *TelegramNotifier) WithAPIBase(apiBase string) *TelegramNotifier {
	notifier.apiBase = strings.TrimRight(apiBase, "/")
	return notifier
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, _ models.User, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", notifier.apiBase, notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", withoutRequestURL(err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", withoutRequestURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// withoutRequestURL drops the *url.Error wrapper, whose message carries the
// bot token from the request path.
func withoutRequestURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

// LogNotifier writes reminders to the log instead of sending them.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: logger.OrNop(log)}
}

func (notifier *LogNotifier) Notify(_ context.Context, user models.User, message string) error {
	notifier.log.Info("reminder",
		zap.Uint("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
		zap.String("message", message),
	)
	return nil
}
