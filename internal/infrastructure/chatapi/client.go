package chatapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/groupgrid/connections-tracker/internal/platform/logging"
	"github.com/groupgrid/connections-tracker/internal/usecase"
)

const (
	defaultBaseURL  = "https://discord.com/api/v10"
	maxPageLimit    = 100
	maxResponseSize = 4 << 20
)

var errChatTransient = crerr.New("chat platform transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client reads channel message history from a Discord-compatible REST
// API. It implements usecase.ChannelHistory.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

type messagePayload struct {
	ID        string        `json:"id"`
	ChannelID string        `json:"channel_id"`
	GuildID   string        `json:"guild_id"`
	Content   string        `json:"content"`
	Timestamp string        `json:"timestamp"`
	Author    authorPayload `json:"author"`
}

type authorPayload struct {
	ID  string `json:"id"`
	Bot bool   `json:"bot"`
}

func (c *Client) ListMessagesBefore(ctx context.Context, channelID, beforeID string, limit int) ([]usecase.ChatMessage, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}

	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	if beforeID != "" {
		values.Set("before", beforeID)
	}
	fullURL := fmt.Sprintf("%s/channels/%s/messages?%s", c.baseURL, url.PathEscape(channelID), values.Encode())

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var payloads []messagePayload
	if err := sonic.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("decode message history: %w", err)
	}

	out := make([]usecase.ChatMessage, 0, len(payloads))
	for _, item := range payloads {
		msg := usecase.ChatMessage{
			GuildID:   item.GuildID,
			ChannelID: item.ChannelID,
			MessageID: item.ID,
			AuthorID:  item.Author.ID,
			Content:   item.Content,
			Bot:       item.Author.Bot,
		}
		if msg.ChannelID == "" {
			msg.ChannelID = channelID
		}
		if ts, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			msg.Timestamp = ts
		}
		out = append(out, msg)
	}
	return out, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retryAfter, err := c.attempt(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !crerr.Is(err, errChatTransient) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		if retryAfter > backoff {
			backoff = retryAfter
		}
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "chat history request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, fullURL string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("authorization", "Bot "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, crerr.Wrapf(errChatTransient, "send request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, crerr.Wrapf(errChatTransient, "read response body: %v", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), crerr.Wrapf(errChatTransient, "rate limited status=%d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, 0, crerr.Wrapf(errChatTransient, "platform status=%d", resp.StatusCode)
	default:
		return nil, 0, fmt.Errorf("platform status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if seconds, err := strconv.ParseFloat(header, 64); err == nil && seconds > 0 {
		return time.Duration(seconds * float64(time.Second))
	}
	return 0
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
