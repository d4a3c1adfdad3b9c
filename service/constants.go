package service

import "time"

const (
	DefaultCacheTTL    = 15 * time.Minute
	DefaultTypingDelay = 40 * time.Millisecond

	// MaxQuestionLength caps an insight question in runes.
	MaxQuestionLength = 500
	// MaxAnswerTokens caps the tokens a remote provider may generate.
	MaxAnswerTokens = 300

	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "gemini-2.0-flash"
	llmRequestTimeout    = 30 * time.Second
)
