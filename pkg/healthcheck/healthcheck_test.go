package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func staticChecker(status Status) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		return Check{Status: status, LastChecked: time.Now()}
	})
}

func TestCheckAggregatesStatuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"one unhealthy", []Status{StatusDegraded, StatusUnhealthy}, StatusUnhealthy},
		{"no checks", nil, StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("despensa", "1.0.0", zap.NewNop())
			for i, status := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(status))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			assert.Len(t, response.Checks, len(tt.statuses))
		})
	}
}

func TestCheckCachesResponse(t *testing.T) {
	calls := 0
	hc := New("despensa", "1.0.0", zap.NewNop())
	hc.Register("counting", CheckerFunc(func(ctx context.Context) Check {
		calls++
		return Check{Status: StatusHealthy, LastChecked: time.Now()}
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())

	assert.Equal(t, 1, calls)
}

func TestHandlerStatusCodes(t *testing.T) {
	hc := New("despensa", "1.0.0", zap.NewNop())
	hc.Register("db", staticChecker(StatusUnhealthy))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.Handler()(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unhealthy")
}
