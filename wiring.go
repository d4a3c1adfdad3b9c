package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"haus-finance/config"
	"haus-finance/repository"
	"haus-finance/service"
)

// cacheBackend is a CacheRepository that may hold a connection.
type cacheBackend interface {
	repository.CacheRepository
	Close() error
}

type memoryCacheBackend struct {
	*repository.MemoryCache
}

func (memoryCacheBackend) Close() error { return nil }

func buildCache(cfg config.CacheConfig) cacheBackend {
	if cfg.Backend == config.CacheRedis {
		return repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return memoryCacheBackend{repository.NewMemoryCache()}
}

func buildHistory(ctx context.Context, cfg config.HistoryConfig) (repository.CalculationRepository, error) {
	switch cfg.Backend {
	case config.HistoryPostgres:
		return repository.NewPostgresCalculationRepository(ctx, cfg.DatabaseURL)
	case config.HistorySQLite:
		return repository.NewSQLiteCalculationRepository(ctx, cfg.SQLitePath)
	default:
		return repository.NewCalculationRepositoryMemory(), nil
	}
}

func buildProvider(ctx context.Context, cfg config.InsightConfig, logger *zap.Logger) (service.AnswerProvider, error) {
	scripted := service.NewScriptedProvider()
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return service.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, scripted, logger), nil
	case config.ProviderGemini:
		return service.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, scripted, logger)
	default:
		return scripted, nil
	}
}

// backends holds the calculator and the stores it was built on.
type backends struct {
	calc    *service.CalculatorService
	history repository.CalculationRepository
	cache   cacheBackend
	logger  *zap.Logger
}

// newBackends wires a CalculatorService from cfg, applying the assumptions
// file when one is configured.
func newBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backends, error) {
	history, err := buildHistory(ctx, cfg.History)
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", cfg.History.Backend, err)
	}
	b := &backends{
		history: history,
		cache:   buildCache(cfg.Cache),
		logger:  logger,
	}
	b.calc = service.NewCalculatorService(b.history, b.cache, logger, cfg.Cache.TTL)

	if cfg.AssumptionsFile != "" {
		a, err := config.LoadAssumptions(cfg.AssumptionsFile)
		if err == nil {
			err = b.calc.SetAssumptions(a)
		}
		if err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

func (b *backends) Close() {
	if err := b.cache.Close(); err != nil {
		b.logger.Warn("failed to close cache", zap.Error(err))
	}
	if err := b.history.Close(); err != nil {
		b.logger.Warn("failed to close history", zap.Error(err))
	}
}
