package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"haus-finance/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.CalculationRecord
}

// NewCalculationRepositoryMemory creates a new in-memory history.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.CalculationRecord{},
	}
}

// Save stores the calculation in memory.
func (r *CalculationRepositoryMemory) Save(_ context.Context, record domain.CalculationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *CalculationRepositoryMemory) Get(_ context.Context, id uuid.UUID) (domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.data {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.CalculationRecord{}, ErrNotFound
}

// List walks the history backwards so the newest record comes first.
func (r *CalculationRepositoryMemory) List(_ context.Context, opts ListOptions) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := opts.limit()
	out := []domain.CalculationRecord{}
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		if opts.Kind != "" && r.data[i].Kind != opts.Kind {
			continue
		}
		out = append(out, r.data[i])
	}
	return out, nil
}

func (r *CalculationRepositoryMemory) Ping(context.Context) error { return nil }

func (r *CalculationRepositoryMemory) Close() error { return nil }
