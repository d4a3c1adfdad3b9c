package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"haus-finance/domain"
)

var ErrNotFound = errors.New("calculation not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ListOptions filters a history listing. An empty Kind lists every kind.
type ListOptions struct {
	Kind  domain.CalculationKind
	Limit int
}

func (o ListOptions) limit() int {
	switch {
	case o.Limit <= 0:
		return DefaultListLimit
	case o.Limit > MaxListLimit:
		return MaxListLimit
	}
	return o.Limit
}

// CalculationRepository keeps the history of calculations, newest first.
type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	Get(ctx context.Context, id uuid.UUID) (domain.CalculationRecord, error)
	List(ctx context.Context, opts ListOptions) ([]domain.CalculationRecord, error)
	Ping(ctx context.Context) error
	Close() error
}
