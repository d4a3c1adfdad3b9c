package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Pinger is implemented by every backend the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(logger *zap.Logger, probes map[string]Pinger) http.HandlerFunc {
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := healthResponse{Status: "ok", Checks: map[string]string{}}
		for _, name := range names {
			if err := probes[name].Ping(ctx); err != nil {
				logger.Error("health probe failed", zap.String("probe", name), zap.Error(err))
				status = http.StatusServiceUnavailable
				payload.Status = "degraded"
				payload.Checks[name] = err.Error()
				continue
			}
			payload.Checks[name] = "ok"
		}

		respondJSON(w, logger, status, payload)
	}
}
