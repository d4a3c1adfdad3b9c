package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haus-finance/domain"
	"haus-finance/repository"
	"haus-finance/service"
)

type testEnv struct {
	handler http.Handler
	calc    *service.CalculatorService
	theme   *service.ThemeStore
	limiter *RateLimiter
}

func newTestEnv(t *testing.T, capacity int, probes map[string]Pinger) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	calc := service.NewCalculatorService(repository.NewCalculationRepositoryMemory(), repository.NewMemoryCache(), logger, time.Minute)
	insight := service.NewInsightService(service.NewScriptedProvider(), 0, logger)
	theme := service.NewThemeStore(domain.ThemeLight)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return &testEnv{
		handler: NewRouter(logger, RouterDependencies{
			Calculator: calc,
			Insight:    insight,
			Theme:      theme,
			Limiter:    limiter,
			Probes:     probes,
		}),
		calc:    calc,
		theme:   theme,
		limiter: limiter,
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCalculators_OK(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	tests := []struct {
		path string
		body string
		key  string
		want float64
	}{
		{"/calculators/stamp-duty", `{"propertyPrice":500000}`, "stampDuty", 17235},
		{"/calculators/mortgage", `{"propertyPrice":500000,"depositPercent":20,"annualInterestRatePercent":6,"loanTermYears":30}`, "monthlyPayment", 2398.2},
		{"/calculators/rental-yield", `{"propertyPrice":800000,"weeklyRent":650,"managementFeePercent":7,"vacancyRatePercent":2,"annualExpenses":5000}`, "netAnnualIncome", 25758},
		{"/calculators/affordability", `{"annualIncome":100000,"livingExpenses":40000}`, "maxBorrowingCapacity", 300000},
		{"/calculators/projection", `{"propertyPrice":1000000,"scenario":"moderate","years":10}`, "growthRatePercent", 6},
		{"/calculators/term-recommendation", `{"propertyPrice":625000,"depositPercent":20,"annualInterestRatePercent":6,"minTermYears":10,"maxTermYears":30,"maxPeriodicPayment":4000,"preference":"minimize_interest"}`, "recommendedTermYears", 17},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := env.do(http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			got := decode[map[string]any](t, w)
			assert.InDelta(t, tt.want, got[tt.key], 0.001)
		})
	}
}

func TestCalculators_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodGet, "/calculators/mortgage", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestCalculators_BadRequest(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodPost, "/calculators/mortgage", `{invalid-json}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/calculators/mortgage", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCalculators_ValidationError(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodPost, "/calculators/rental-yield", `{"propertyPrice":0,"weeklyRent":500}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[errorResponse](t, w)
	assert.Equal(t, "propertyPrice", got.Field)
	assert.NotEmpty(t, got.Error)
}

func TestCalculators_RateLimited(t *testing.T) {
	env := newTestEnv(t, 2, nil)

	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/calculators/stamp-duty", `{"propertyPrice":100000}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := env.do(http.MethodPost, "/calculators/stamp-duty", `{"propertyPrice":100000}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// history and insight routes are not limited
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/calculations", "").Code)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t, 100, nil)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/calculators/stamp-duty", `{"propertyPrice":500000}`).Code)
	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/calculators/affordability", `{"annualIncome":90000}`).Code)

	w := env.do(http.MethodGet, "/calculations", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[historyResponse](t, w)
	require.Len(t, all.Calculations, 2)
	assert.Equal(t, domain.KindAffordability, all.Calculations[0].Kind)

	w = env.do(http.MethodGet, "/calculations?kind=stamp_duty&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode[historyResponse](t, w)
	require.Len(t, filtered.Calculations, 1)

	id := filtered.Calculations[0].ID
	w = env.do(http.MethodGet, "/calculations/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	rec := decode[domain.CalculationRecord](t, w)
	assert.Equal(t, id, rec.ID)
	assert.JSONEq(t, `{"propertyPrice":500000,"stampDuty":17235}`, string(rec.Result))
}

func TestHistory_Errors(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/calculations/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/calculations/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/calculations?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/calculations?kind=lottery", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(http.MethodDelete, "/calculations", "").Code)
}

func TestInsightAsk(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodPost, "/insights/ask", `{"question":"What yield should I expect?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	answer := decode[domain.Answer](t, w)
	assert.Equal(t, service.ScriptedProviderName, answer.Provider)
	assert.Equal(t, domain.TopicInvestment, answer.Topic)

	w = env.do(http.MethodPost, "/insights/ask", `{"question":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "question", decode[errorResponse](t, w).Field)
}

func TestTheme(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodGet, "/preferences/theme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ThemeLight, decode[themePayload](t, w).Theme)

	w = env.do(http.MethodPut, "/preferences/theme", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ThemeDark, env.theme.Current())

	w = env.do(http.MethodPut, "/preferences/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(http.MethodPost, "/preferences/theme", `{}`).Code)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := newTestEnv(t, 100, map[string]Pinger{"cache": repository.NewMemoryCache()})
	w := ok.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, healthResponse{Status: "ok", Checks: map[string]string{"cache": "ok"}}, decode[healthResponse](t, w))

	bad := newTestEnv(t, 100, map[string]Pinger{
		"cache":   repository.NewMemoryCache(),
		"history": pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	w = bad.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	got := decode[healthResponse](t, w)
	assert.Equal(t, "degraded", got.Status)
	assert.Equal(t, "connection refused", got.Checks["history"])
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t, 100, nil)

	w := env.do(http.MethodGet, "/healthz", "")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}
