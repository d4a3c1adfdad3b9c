package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/finance"
	"haus-finance/repository"
)

// CalculatorService validates, caches and records calculations.
type CalculatorService struct {
	history repository.CalculationRepository
	cache   repository.CacheRepository
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu              sync.RWMutex
	assumptions     finance.Assumptions
	assumptionsHash uint64
}

// NewCalculatorService creates a CalculatorService using the default
// assumptions. cache may be nil to disable result caching.
func NewCalculatorService(
	history repository.CalculationRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
	ttl time.Duration,
) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CalculatorService{
		history: history,
		cache:   cache,
		logger:  logger,
		ttl:     ttl,
		now:     time.Now,
	}
	a := finance.DefaultAssumptions()
	s.assumptions = a
	s.assumptionsHash = hashAssumptions(a)
	return s
}

// Assumptions returns a copy of the assumptions currently in use.
func (s *CalculatorService) Assumptions() finance.Assumptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assumptions.Clone()
}

// SetAssumptions validates and swaps the assumptions. Cached results computed
// under the previous assumptions are no longer reachable.
func (s *CalculatorService) SetAssumptions(a finance.Assumptions) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a = a.Clone()
	hash := hashAssumptions(a)

	s.mu.Lock()
	s.assumptions = a
	s.assumptionsHash = hash
	s.mu.Unlock()

	s.logger.Info("assumptions updated", zap.String("hash", fmt.Sprintf("%016x", hash)))
	return nil
}

func (s *CalculatorService) snapshot() (finance.Assumptions, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assumptions, s.assumptionsHash
}

func (s *CalculatorService) StampDuty(ctx context.Context, in domain.StampDutyInputs) (domain.StampDutyResult, error) {
	return calculate(ctx, s, domain.KindStampDuty, in, func(in domain.StampDutyInputs, a finance.Assumptions) (domain.StampDutyResult, error) {
		duty, err := finance.StampDuty(in.PropertyPrice, a)
		if err != nil {
			return domain.StampDutyResult{}, err
		}
		return domain.StampDutyResult{PropertyPrice: in.PropertyPrice, StampDuty: duty}, nil
	})
}

func (s *CalculatorService) Mortgage(ctx context.Context, in domain.MortgageInputs) (domain.MortgageResult, error) {
	return calculate(ctx, s, domain.KindMortgage, in, finance.Mortgage)
}

func (s *CalculatorService) RentalYield(ctx context.Context, in domain.RentalYieldInputs) (domain.RentalYieldResult, error) {
	return calculate(ctx, s, domain.KindRentalYield, in, func(in domain.RentalYieldInputs, _ finance.Assumptions) (domain.RentalYieldResult, error) {
		return finance.RentalYield(in)
	})
}

func (s *CalculatorService) Projection(ctx context.Context, in domain.ProjectionInputs) (domain.ProjectionResult, error) {
	return calculate(ctx, s, domain.KindProjection, in, finance.Project)
}

func (s *CalculatorService) Affordability(ctx context.Context, in domain.AffordabilityInputs) (domain.AffordabilityResult, error) {
	return calculate(ctx, s, domain.KindAffordability, in, finance.Affordability)
}

func (s *CalculatorService) RecommendTerm(ctx context.Context, in domain.TermRecommendationInputs) (domain.TermRecommendationResult, error) {
	return calculate(ctx, s, domain.KindTermRecommendation, in, finance.RecommendTerm)
}

// History lists recorded calculations, newest first. An empty kind lists all.
func (s *CalculatorService) History(ctx context.Context, kind domain.CalculationKind, limit int) ([]domain.CalculationRecord, error) {
	if kind != "" && !kind.Valid() {
		return nil, &finance.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown calculation kind %q", kind)}
	}
	records, err := s.history.List(ctx, repository.ListOptions{Kind: kind, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Calculation returns one recorded calculation or repository.ErrNotFound.
func (s *CalculatorService) Calculation(ctx context.Context, id uuid.UUID) (domain.CalculationRecord, error) {
	rec, err := s.history.Get(ctx, id)
	if err != nil {
		return domain.CalculationRecord{}, fmt.Errorf("get calculation %s: %w", id, err)
	}
	return rec, nil
}

// calculate runs fn behind the result cache and records the outcome.
// Cache and history failures are logged; only validation errors reach the caller.
func calculate[In, Out any](
	ctx context.Context,
	s *CalculatorService,
	kind domain.CalculationKind,
	in In,
	fn func(In, finance.Assumptions) (Out, error),
) (Out, error) {
	var zero Out

	a, aHash := s.snapshot()
	input, err := json.Marshal(in)
	if err != nil {
		return zero, fmt.Errorf("encode %s input: %w", kind, err)
	}
	key := cacheKey(kind, aHash, input)
	log := s.logger.With(zap.String("kind", string(kind)))

	if out, ok := cachedResult[Out](ctx, s, key, log); ok {
		return out, nil
	}

	out, err := fn(in, a)
	if err != nil {
		log.Debug("calculation rejected", zap.Error(err))
		return zero, err
	}

	result, err := json.Marshal(out)
	if err != nil {
		return zero, fmt.Errorf("encode %s result: %w", kind, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, string(result), s.ttl); err != nil {
			log.Warn("failed to cache calculation", zap.Error(err))
		}
	}

	// history is best effort
	record := domain.CalculationRecord{
		ID:        uuid.New(),
		Kind:      kind,
		Input:     input,
		Result:    result,
		CreatedAt: s.now().UTC(),
	}
	if err := s.history.Save(ctx, record); err != nil {
		log.Warn("failed to save calculation", zap.Error(err))
	}

	return out, nil
}

func cachedResult[Out any](ctx context.Context, s *CalculatorService, key string, log *zap.Logger) (Out, bool) {
	var out Out
	if s.cache == nil {
		return out, false
	}
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache lookup failed", zap.Error(err))
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := json.Unmarshal([]byte(cached), &out); err != nil {
		log.Warn("discarding unreadable cache entry", zap.Error(err))
		return out, false
	}
	log.Debug("cache hit", zap.String("key", key))
	return out, true
}

func cacheKey(kind domain.CalculationKind, assumptionsHash uint64, input []byte) string {
	return fmt.Sprintf("%s:%016x:%016x", kind, assumptionsHash, xxhash.Sum64(input))
}

func hashAssumptions(a finance.Assumptions) uint64 {
	// Map keys are sorted by encoding/json, so equal assumptions hash equally.
	b, err := json.Marshal(a)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(b)
}
