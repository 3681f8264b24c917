package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type TelegramClient struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Client   *http.Client
}

// NewTelegramClient timeout 为 0 时不设超时
func NewTelegramClient(baseURL, botToken, chatID string, timeout time.Duration) *TelegramClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	return &TelegramClient{
		BaseURL:  baseURL,
		BotToken: botToken,
		ChatID:   chatID,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *TelegramClient) Enabled() bool {
	return c != nil && c.BotToken != "" && c.ChatID != ""
}

// SendURL 文本做 query 编码（空格为 +）后拼进 query string
func (c *TelegramClient) SendURL(text string) string {
	return fmt.Sprintf("%s/bot%s/sendMessage?chat_id=%s&parse_mode=Markdown&text=%s",
		c.BaseURL, c.BotToken, url.QueryEscape(c.ChatID), url.QueryEscape(text))
}

// SendMessage 发送消息；响应内容不解析
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	if !c.Enabled() {
		return fmt.Errorf("telegram disabled")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SendURL(text), nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API返回错误: %d", resp.StatusCode)
	}
	return nil
}

// Notify 失败只记日志，不影响 sweep
func (c *TelegramClient) Notify(ctx context.Context, message string) {
	if err := c.SendMessage(ctx, message); err != nil {
		slog.Warn("telegram notification failed", "error", err)
	}
}
