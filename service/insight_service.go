package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/finance"
)

// AnswerProvider answers questions asked in the intelligence hub.
type AnswerProvider interface {
	Name() string
	Answer(ctx context.Context, q domain.Question) (domain.Answer, error)
}

// InsightService validates questions and hands them to the configured
// provider. Stream replays the answer word by word with a typing delay.
type InsightService struct {
	provider    AnswerProvider
	typingDelay time.Duration
	logger      *zap.Logger
}

func NewInsightService(provider AnswerProvider, typingDelay time.Duration, logger *zap.Logger) *InsightService {
	if provider == nil {
		provider = NewScriptedProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightService{
		provider:    provider,
		typingDelay: typingDelay,
		logger:      logger,
	}
}

// Provider reports the name of the provider answering questions.
func (s *InsightService) Provider() string {
	return s.provider.Name()
}

func (s *InsightService) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	q, err := normaliseQuestion(q)
	if err != nil {
		return domain.Answer{}, err
	}

	start := time.Now()
	answer, err := s.provider.Answer(ctx, q)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%s: answer: %w", s.provider.Name(), err)
	}
	s.logger.Debug("question answered",
		zap.String("provider", answer.Provider),
		zap.String("topic", string(answer.Topic)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return answer, nil
}

// Stream answers q and passes it to emit one word at a time, finishing with
// a chunk whose Done is set. It stops early when ctx is cancelled or emit
// returns an error.
func (s *InsightService) Stream(ctx context.Context, q domain.Question, emit func(domain.AnswerChunk) error) error {
	answer, err := s.Ask(ctx, q)
	if err != nil {
		return err
	}

	words := strings.Fields(answer.Text)
	var timer *time.Timer
	if s.typingDelay > 0 {
		timer = time.NewTimer(s.typingDelay)
		defer timer.Stop()
	}

	for i, word := range words {
		if i > 0 {
			word = " " + word
			if timer != nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
				timer.Reset(s.typingDelay)
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(domain.AnswerChunk{Text: word}); err != nil {
			return err
		}
	}

	return emit(domain.AnswerChunk{Done: true, Provider: answer.Provider})
}

func normaliseQuestion(q domain.Question) (domain.Question, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return q, &finance.ValidationError{Field: "question", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(q.Text) > MaxQuestionLength {
		return q, &finance.ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("must be at most %d characters", MaxQuestionLength),
		}
	}
	switch q.Topic {
	case "", domain.TopicMarket, domain.TopicSuburbs, domain.TopicInvestment,
		domain.TopicFinance, domain.TopicGeneral:
	default:
		return q, &finance.ValidationError{Field: "topic", Message: fmt.Sprintf("unknown topic %q", q.Topic)}
	}
	return q, nil
}
