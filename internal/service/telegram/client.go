package telegram

import (
	"context"
	"fmt"

	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	xlogger "InvestScout/pkg/logger"
)

// Client implements Notifier over the Telegram Bot API.
type Client struct {
	baseURL  string
	botToken string
	chatID   string
	http     *xhttp.Client
	logger   *xlogger.Logger
}

// New creates a new Telegram notifier.
func New(cfg *config.Config, lgr *xlogger.Logger) *Client {
	return &Client{
		baseURL:  cfg.Delivery.Telegram.BaseURL,
		botToken: cfg.Delivery.Telegram.BotToken,
		chatID:   cfg.Delivery.Telegram.ChatID,
		http:     xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout)),
		logger:   lgr,
	}
}

// Send posts one message to the configured chat.
func (c *Client) Send(ctx context.Context, text string) error {
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken),
		Body: map[string]any{
			"chat_id":    c.chatID,
			"text":       text,
			"parse_mode": "HTML",
		},
	}, &out)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("telegram send: api reported failure")
	}
	c.logger.Debug("telegram message delivered", xlogger.String("chat_id", c.chatID))
	return nil
}
