package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"haus-finance/service"
)

type CalculatorHandler struct {
	service *service.CalculatorService
	logger  *zap.Logger
}

func NewCalculatorHandler(service *service.CalculatorService, logger *zap.Logger) *CalculatorHandler {
	return &CalculatorHandler{service: service, logger: logger}
}

func (h *CalculatorHandler) StampDuty(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.StampDuty)
}

func (h *CalculatorHandler) Mortgage(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.Mortgage)
}

func (h *CalculatorHandler) RentalYield(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.RentalYield)
}

func (h *CalculatorHandler) Projection(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.Projection)
}

func (h *CalculatorHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.Affordability)
}

func (h *CalculatorHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	handleCalculation(h, w, r, h.service.RecommendTerm)
}

func handleCalculation[In, Out any](
	h *CalculatorHandler,
	w http.ResponseWriter,
	r *http.Request,
	calc func(context.Context, In) (Out, error),
) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var input In
	if err := decodeJSON(w, r, &input); err != nil {
		respondDecodeError(w, h.logger, err)
		return
	}

	result, err := calc(r.Context(), input)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}
