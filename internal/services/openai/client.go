package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	jsonResponseType   = "json_object"
	defaultHTTPTimeout = 300 * time.Second
	defaultTemperature = 0.7
)

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	AudioModel     string
	ImageModel     string
	TimeoutSeconds int
}

// Client wraps an OpenAI-compatible chat, speech, and image API.
//
// Every method issues exactly one request: a failed call is terminal for
// the current pipeline run and surfaces as an operator prompt, so there is
// no retry or backoff here.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			ChatModel:      strings.TrimSpace(cfg.ChatModel),
			AudioModel:     strings.TrimSpace(cfg.AudioModel),
			ImageModel:     strings.TrimSpace(cfg.ImageModel),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://api.openai.com/v1"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Usage reports the billed units of one chat completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Completion is the result of one chat call.
type Completion struct {
	Text  string
	Usage Usage
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("openai request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Complete issues a plain-text chat completion with the supplied prompt as
// the system message.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	return c.complete(ctx, prompt, maxTokens, nil)
}

// CompleteJSON issues a JSON-only chat completion. The returned text is the
// raw JSON payload produced by the model; decode it with DecodeModelJSON.
func (c *Client) CompleteJSON(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	return c.complete(ctx, prompt, maxTokens, map[string]string{"type": jsonResponseType})
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, responseFormat map[string]string) (Completion, error) {
	var empty Completion
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return empty, errors.New("openai complete: prompt required")
	}
	if c.cfg.APIKey == "" {
		return empty, errors.New("openai complete: api key required")
	}
	payload := chatCompletionRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
		},
		Temperature:    defaultTemperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat,
	}

	completion, err := c.sendChatRequest(ctx, payload)
	if err != nil {
		return empty, err
	}
	content := extractCompletionContent(completion)
	if content == "" {
		return empty, fmt.Errorf("openai complete: empty content (finish_reason=%q)", extractFinishReason(completion))
	}
	return Completion{Text: content, Usage: completion.Usage}, nil
}

// Speech synthesizes the input text with the given voice and returns raw
// audio bytes.
func (c *Client) Speech(ctx context.Context, input, voice string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("openai speech: input required")
	}
	voice = strings.ToLower(strings.TrimSpace(voice))
	if voice == "" {
		return nil, errors.New("openai speech: voice required")
	}
	if c.cfg.APIKey == "" {
		return nil, errors.New("openai speech: api key required")
	}

	payload := speechRequest{
		Model: c.cfg.AudioModel,
		Input: input,
		Voice: voice,
	}
	body, err := c.post(ctx, "audio/speech", payload)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, errors.New("openai speech: empty audio payload")
	}
	return body, nil
}

// Image generates one image for the prompt and returns its raw bytes.
func (c *Client) Image(ctx context.Context, prompt string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("openai image: prompt required")
	}
	if c.cfg.APIKey == "" {
		return nil, errors.New("openai image: api key required")
	}

	payload := imageRequest{
		Model:          c.cfg.ImageModel,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard",
		Style:          "vivid",
		ResponseFormat: "b64_json",
	}
	body, err := c.post(ctx, "images/generations", payload)
	if err != nil {
		return nil, err
	}

	var decoded imageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("openai image: decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("openai image: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].B64JSON) == "" {
		return nil, errors.New("openai image: empty image payload")
	}
	raw, err := base64.StdEncoding.DecodeString(decoded.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai image: decode image bytes: %w", err)
	}
	return raw, nil
}

type chatCompletionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	Style          string `json:"style"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) sendChatRequest(ctx context.Context, payload chatCompletionRequest) (chatCompletionResponse, error) {
	var completion chatCompletionResponse
	body, err := c.post(ctx, "chat/completions", payload)
	if err != nil {
		return completion, err
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return completion, fmt.Errorf("openai request: decode response: %w", err)
	}
	if completion.Error != nil {
		return completion, fmt.Errorf("openai request: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	return completion, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("openai request: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("openai request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: http error (timeout=%s): %w", c.timeoutDuration(), err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.httpClient.Timeout
}

func extractCompletionContent(completion chatCompletionResponse) string {
	for _, choice := range completion.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return content
		}
	}
	return ""
}

func extractFinishReason(completion chatCompletionResponse) string {
	for _, choice := range completion.Choices {
		if reason := strings.TrimSpace(choice.FinishReason); reason != "" {
			return reason
		}
	}
	return ""
}
