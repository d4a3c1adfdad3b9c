package http

import (
	"net/http"

	"go.uber.org/zap"

	"haus-finance/service"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Calculator     *service.CalculatorService
	Insight        *service.InsightService
	Theme          *service.ThemeStore
	Limiter        *RateLimiter
	Probes         map[string]Pinger
	AllowedOrigins []string
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *zap.Logger, deps RouterDependencies) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	upgrader := newUpgrader(deps.AllowedOrigins)

	mux.HandleFunc("/healthz", healthHandler(logger, deps.Probes))

	if deps.Calculator != nil {
		calc := NewCalculatorHandler(deps.Calculator, logger)
		limited := func(h http.HandlerFunc) http.Handler {
			if deps.Limiter == nil {
				return h
			}
			return RateLimitMiddleware(deps.Limiter, logger, h)
		}
		mux.Handle("/calculators/stamp-duty", limited(calc.StampDuty))
		mux.Handle("/calculators/mortgage", limited(calc.Mortgage))
		mux.Handle("/calculators/rental-yield", limited(calc.RentalYield))
		mux.Handle("/calculators/projection", limited(calc.Projection))
		mux.Handle("/calculators/affordability", limited(calc.Affordability))
		mux.Handle("/calculators/term-recommendation", limited(calc.RecommendTerm))

		history := NewHistoryHandler(deps.Calculator, logger)
		mux.HandleFunc("/calculations", history.List)
		mux.HandleFunc("/calculations/{id}", history.Get)
	}

	if deps.Insight != nil {
		insight := NewInsightHandler(deps.Insight, upgrader, logger)
		mux.HandleFunc("/insights/ask", insight.Ask)
		mux.HandleFunc("/insights/stream", insight.Stream)
	}

	if deps.Theme != nil {
		theme := NewThemeHandler(deps.Theme, upgrader, logger)
		mux.HandleFunc("/preferences/theme", theme.Theme)
		mux.HandleFunc("/preferences/theme/events", theme.Events)
	}

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}
