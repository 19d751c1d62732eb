package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means no API key was supplied; the endpoint answers 503.
	ErrNotConfigured = errors.New("chat backend is not configured")
	ErrEmptyReply    = errors.New("chat backend returned no choices")
)

// Gemini's OpenAI-compatible endpoint.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const defaultModel = "gemini-2.0-flash"

// Config holds the upstream completion backend settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: os.Getenv("CHAT_BASE_URL"),
		Model:   os.Getenv("CHAT_MODEL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return cfg
}

// Message is one turn of a conversation in the OpenAI chat wire shape.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Service proxies chat completions to an OpenAI-compatible backend.
type Service struct {
	cfg    Config
	client *http.Client
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, client: &http.Client{Timeout: 60 * time.Second}}
}

// Configured reports whether an API key is present.
func (s *Service) Configured() bool {
	return s.cfg.APIKey != ""
}

// Model resolves the per-request model override against the configured default.
func (s *Service) Model(override string) string {
	if override != "" {
		return override
	}
	return s.cfg.Model
}

// Complete sends the conversation upstream and returns the assistant's reply.
func (s *Service) Complete(ctx context.Context, messages []Message, model string, temperature float64, maxTokens int) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{
		Model:       s.Model(model),
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	url := strings.TrimSuffix(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call chat backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return out.Choices[0].Message.Content, nil
}
