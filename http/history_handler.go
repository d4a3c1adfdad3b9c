package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/service"
)

type HistoryHandler struct {
	service *service.CalculatorService
	logger  *zap.Logger
}

func NewHistoryHandler(service *service.CalculatorService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{service: service, logger: logger}
}

type historyResponse struct {
	Calculations []domain.CalculationRecord `json:"calculations"`
}

// List serves GET /calculations?kind=&limit=.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, http.MethodGet)
		return
	}

	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "must be a non-negative integer", Field: "limit"})
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), domain.CalculationKind(q.Get("kind")), limit)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, historyResponse{Calculations: records})
}

// Get serves GET /calculations/{id}.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, http.MethodGet)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "must be a UUID", Field: "id"})
		return
	}

	record, err := h.service.Calculation(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, record)
}
