package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CalculationKind names the calculator that produced a record.
type CalculationKind string

const (
	KindStampDuty          CalculationKind = "stamp_duty"
	KindMortgage           CalculationKind = "mortgage"
	KindRentalYield        CalculationKind = "rental_yield"
	KindProjection         CalculationKind = "projection"
	KindAffordability      CalculationKind = "affordability"
	KindTermRecommendation CalculationKind = "term_recommendation"
)

// Valid reports whether k is one of the known calculation kinds.
func (k CalculationKind) Valid() bool {
	switch k {
	case KindStampDuty, KindMortgage, KindRentalYield, KindProjection,
		KindAffordability, KindTermRecommendation:
		return true
	}
	return false
}

// CalculationRecord is one stored calculation: the inputs as submitted and
// the result returned, both as JSON.
type CalculationRecord struct {
	ID        uuid.UUID       `json:"id"`
	Kind      CalculationKind `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

type StampDutyInputs struct {
	PropertyPrice float64 `json:"propertyPrice"`
}

type StampDutyResult struct {
	PropertyPrice float64 `json:"propertyPrice"`
	StampDuty     float64 `json:"stampDuty"`
}
