package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessler/deckplan/pkg/errors"
	"github.com/mkessler/deckplan/pkg/httputil"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	httpTimeout    = 60 * time.Second
)

// ClientConfig configures the remote planner client.
type ClientConfig struct {
	// BaseURL is the chat-completions endpoint root. Empty uses the
	// public default; point it at a compatible proxy for private models.
	BaseURL string

	// APIKey authenticates requests. Required.
	APIKey string

	// Model selects the model. Empty uses the default.
	Model string

	// Cache stores outlines so repeated runs never hit the service
	// twice. Nil disables caching.
	Cache *httputil.Cache

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// Client calls a chat-completions style service to generate outlines.
// It retries transient failures and caches successful outlines.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	cache   *httputil.Cache
	logger  *log.Logger
}

// NewClient creates a remote planner client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "planner API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		cache:   cfg.Cache,
		logger:  logger,
	}, nil
}

// Model returns the configured model name, for cache keys.
func (c *Client) Model() string { return c.model }

// chat-completions wire types. Only the fields we read are declared.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are a presentation planner. Given a topic, produce a JSON deck outline:
{"topic": "...", "slides": [{"title": "...", "bullets": ["..."], "images": ["description"], "is_comparison": false}]}.
Keep bullets short. Mark slides that contrast two things with "is_comparison": true.
Return JSON only.`

// Outline generates an outline for the topic, consulting the cache first.
func (c *Client) Outline(ctx context.Context, req OutlineRequest) (*Outline, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("outline:%s:%d:%s:%s", req.Topic, req.SlideCount, req.Audience, c.model)
	if c.cache != nil && !req.Refresh {
		var cached Outline
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			c.logger.Debug("outline cache hit", "topic", req.Topic)
			return &cached, nil
		}
	}

	var outline *Outline
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		outline, err = c.fetchOutline(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, outline)
	}
	return outline, nil
}

func (c *Client) fetchOutline(ctx context.Context, req OutlineRequest) (*Outline, error) {
	prompt := fmt.Sprintf("Topic: %s\nSlides: %d", req.Topic, req.SlideCount)
	if req.Audience != "" {
		prompt += "\nAudience: " + req.Audience
	}
	if req.Reference != "" {
		prompt += "\nSource material:\n" + req.Reference
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal planner request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "planner request"),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode planner response")
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "planner response has no choices")
	}

	var outline Outline
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &outline); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse outline from planner")
	}
	if len(outline.Slides) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "planner produced an empty outline")
	}
	if outline.Topic == "" {
		outline.Topic = req.Topic
	}

	c.logger.Debug("fetched outline",
		"topic", req.Topic,
		"slides", len(outline.Slides),
		"duration", time.Since(start))
	return &outline, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := 0
		fmt.Sscanf(resp.Header.Get("Retry-After"), "%d", &retryAfter)
		return &httputil.RetryableError{
			Err: &errors.RateLimitedError{RetryAfter: retryAfter},
		}
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeInvalidConfig, "planner rejected the API key")
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "planner status %d", resp.StatusCode),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "planner status %d", resp.StatusCode)
	}
}

// Ensure Client implements Planner.
var _ Planner = (*Client)(nil)
