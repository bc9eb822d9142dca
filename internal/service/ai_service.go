package service

import (
	"aura_edu_backend/internal/config"
	"aura_edu_backend/pkg/httpx"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ChatCompleter 是对大模型对话接口的抽象，便于测试替换
type ChatCompleter interface {
	Chat(ctx context.Context, messages []AIChatMessage) (string, error)
}

type AIService struct {
	config config.AIConfig
	client *http.Client
	policy httpx.Policy
}

func NewAIService(cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AIService{
		config: cfg,
		client: httpx.NewClient(timeout),
		policy: httpx.DefaultPolicy,
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat 调用 OpenAI 兼容的 /chat/completions 接口，429 与 5xx 自动重试
func (s *AIService) Chat(ctx context.Context, messages []AIChatMessage) (string, error) {
	if s.config.BaseURL == "" {
		return "", errors.New("AI base_url is not configured")
	}

	jsonData, err := json.Marshal(ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(s.config.BaseURL, "/") + "/chat/completions"
	resp, err := httpx.DoWithRetry(ctx, s.client, s.policy, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("AI API error: %w", err)
	}
	defer resp.Body.Close()

	var result ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode AI response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", errors.New("AI returned no choices")
}
