package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"haus-finance/domain"
)

const OpenAIProviderName = "openai"

const systemPrompt = "You are the HAUS property intelligence assistant. You help Australian home buyers " +
	"and investors with market trends, suburb research, rental returns and home loans. Answer in plain " +
	"English in three or four sentences, quote figures in Australian dollars and never give personal " +
	"financial advice."

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIProvider answers through an OpenAI-compatible chat completions
// endpoint. Any failure falls back to the scripted answers.
type OpenAIProvider struct {
	client   *resty.Client
	apiKey   string
	model    string
	fallback AnswerProvider
	logger   *zap.Logger
}

func NewOpenAIProvider(apiKey, baseURL, model string, fallback AnswerProvider, logger *zap.Logger) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if fallback == nil {
		fallback = NewScriptedProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIProvider{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(llmRequestTimeout).
			SetHeader("Content-Type", "application/json"),
		apiKey:   apiKey,
		model:    model,
		fallback: fallback,
		logger:   logger,
	}
}

func (p *OpenAIProvider) Name() string { return OpenAIProviderName }

func (p *OpenAIProvider) Answer(ctx context.Context, q domain.Question) (domain.Answer, error) {
	if p.apiKey == "" {
		return p.fallback.Answer(ctx, q)
	}

	text, err := p.complete(ctx, buildPrompt(q))
	if err != nil {
		p.logger.Warn("openai completion failed, using scripted answer", zap.Error(err))
		return p.fallback.Answer(ctx, q)
	}

	return domain.Answer{
		Text:     text,
		Topic:    topicOrGeneral(q.Topic),
		Provider: OpenAIProviderName,
	}, nil
}

func (p *OpenAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	var out chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(chatRequest{
			Model: p.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
			MaxTokens: MaxAnswerTokens,
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no response from model")
	}

	answer := strings.TrimSpace(out.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("empty response from model")
	}
	return answer, nil
}

func buildPrompt(q domain.Question) string {
	topic := topicOrGeneral(q.Topic)
	return fmt.Sprintf("Topic: %s\nQuestion: %s", topic, strings.TrimSpace(q.Text))
}

func topicOrGeneral(t domain.Topic) domain.Topic {
	if t == "" {
		return domain.TopicGeneral
	}
	return t
}
