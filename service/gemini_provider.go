package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"haus-finance/domain"
)

const GeminiProviderName = "gemini"

// GeminiProvider answers with Google Gemini, falling back to the scripted
// answers when the call fails.
type GeminiProvider struct {
	client   *genai.Client
	model    string
	fallback AnswerProvider
	logger   *zap.Logger
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, fallback AnswerProvider, logger *zap.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if fallback == nil {
		fallback = NewScriptedProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client:   client,
		model:    model,
		fallback: fallback,
		logger:   logger,
	}, nil
}

func (p *GeminiProvider) Name() string { return GeminiProviderName }

func (p *GeminiProvider) Answer(ctx context.Context, q domain.Question) (domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, llmRequestTimeout)
	defer cancel()

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(buildPrompt(q)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   MaxAnswerTokens,
	})
	if err != nil {
		p.logger.Warn("gemini generation failed, using scripted answer", zap.Error(err))
		return p.fallback.Answer(ctx, q)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		p.logger.Warn("gemini returned an empty answer, using scripted answer")
		return p.fallback.Answer(ctx, q)
	}

	return domain.Answer{
		Text:     text,
		Topic:    topicOrGeneral(q.Topic),
		Provider: GeminiProviderName,
	}, nil
}
