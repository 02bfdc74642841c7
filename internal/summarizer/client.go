package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"reverie/internal/config"
	"reverie/pkg/formatting"
)

type client struct {
	http    *http.Client
	cfg     *config.SummarizerConfig
	logger  *slog.Logger
	baseURL string
}

// New creates a summarizer System backed by an Anthropic-style messages API.
func New(cfg *config.SummarizerConfig, logger *slog.Logger) System {
	return &client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		cfg:     cfg,
		logger:  logger.With("system", "summarizer"),
		baseURL: cfg.BaseURL,
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Summarize sends the entry content to the model and parses the reply
// against the summary/questions contract. One outbound call, no retry.
func (c *client) Summarize(ctx context.Context, content string) (*Result, error) {
	reply, err := c.send(ctx, ComposePrompt(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarization, err)
	}

	parsed, err := formatting.Parse[Result](reply)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarization, ErrInvalidResponse)
	}

	if err := validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummarization, err)
	}

	c.logger.Info("entry summarized", "questions", len(parsed.Questions))
	return &parsed, nil
}

func (c *client) send(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(messageRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/messages",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", c.cfg.APIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model returned %d", resp.StatusCode)
	}

	var parsed messageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("response contains no text content")
}

func validate(r Result) error {
	if r.Summary == "" {
		return fmt.Errorf("%w: missing summary", ErrInvalidResponse)
	}
	if len(r.Questions) == 0 {
		return fmt.Errorf("%w: missing questions", ErrInvalidResponse)
	}
	for _, q := range r.Questions {
		if q == "" {
			return fmt.Errorf("%w: empty question", ErrInvalidResponse)
		}
	}
	return nil
}
